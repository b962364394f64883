package testing

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/veedubyou/stem-splitter/src/shared/config/envvar"
	"github.com/veedubyou/stem-splitter/src/shared/lib/env"
)

func SetTestEnv() {
	err := os.Setenv(envvar.ENVIRONMENT, string(env.Test))
	Expect(err).NotTo(HaveOccurred())
}

// MakeTempDir creates a scratch directory that is removed after the current test
func MakeTempDir() string {
	dir, err := os.MkdirTemp("", "stem-splitter-test-")
	ExpectWithOffset(1, err).NotTo(HaveOccurred())

	DeferCleanup(func() {
		_ = os.RemoveAll(dir)
	})

	return dir
}

// SetEnvVars applies the values for the current test. An empty value unsets the variable.
func SetEnvVars(values map[string]string) {
	for key, value := range values {
		previous, wasSet := os.LookupEnv(key)

		var err error
		if value == "" {
			err = os.Unsetenv(key)
		} else {
			err = os.Setenv(key, value)
		}
		ExpectWithOffset(1, err).NotTo(HaveOccurred())

		key := key
		DeferCleanup(func() {
			if wasSet {
				_ = os.Setenv(key, previous)
			} else {
				_ = os.Unsetenv(key)
			}
		})
	}
}
