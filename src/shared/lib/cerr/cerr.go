// Package cerr builds cockroachdb errors that carry structured fields,
// so the fields can be logged together once the error reaches the top.
package cerr

import (
	"fmt"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"
)

type F = map[string]any

type Context struct {
	fields F
}

func Field(key string, value any) Context {
	return Context{}.Field(key, value)
}

func Fields(fields F) Context {
	ctx := Context{}
	for key, value := range fields {
		ctx = ctx.Field(key, value)
	}

	return ctx
}

func (c Context) Field(key string, value any) Context {
	fields := make(F, len(c.fields)+1)
	for k, v := range c.fields {
		fields[k] = v
	}

	fields[key] = value
	return Context{fields: fields}
}

func (c Context) Wrap(err error) Wrapper {
	return Wrapper{ctx: c, err: err}
}

func (c Context) Error(msg string) error {
	return c.attach(errors.NewWithDepth(1, msg))
}

func (c Context) attach(err error) error {
	if len(c.fields) == 0 {
		return err
	}

	return &fieldsError{cause: err, fields: c.fields}
}

type Wrapper struct {
	ctx Context
	err error
}

func (w Wrapper) Error(msg string) error {
	if w.err == nil {
		return w.ctx.attach(errors.NewWithDepth(1, msg))
	}

	return w.ctx.attach(errors.WrapWithDepth(1, w.err, msg))
}

func Wrap(err error) Wrapper {
	return Context{}.Wrap(err)
}

func Error(msg string) error {
	return errors.NewWithDepth(1, msg)
}

// CollectFields gathers every field attached along err's cause chain.
// Outer fields win over inner ones with the same key.
func CollectFields(err error) F {
	fields := F{}
	for ; err != nil; err = errors.UnwrapOnce(err) {
		fieldsErr, ok := err.(*fieldsError)
		if !ok {
			continue
		}

		for key, value := range fieldsErr.fields {
			if _, exists := fields[key]; !exists {
				fields[key] = value
			}
		}
	}

	return fields
}

func Log(err error) {
	log.WithFields(log.Fields(CollectFields(err))).
		WithError(err).
		Error(err.Error())
}

type fieldsError struct {
	cause  error
	fields F
}

func (f *fieldsError) Error() string {
	return f.cause.Error()
}

func (f *fieldsError) Unwrap() error {
	return f.cause
}

func (f *fieldsError) Format(s fmt.State, verb rune) {
	errors.FormatError(f, s, verb)
}

func (f *fieldsError) FormatError(p errors.Printer) error {
	if p.Detail() {
		p.Printf("fields: %v", f.fields)
	}

	return f.cause
}
