package util

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"os"
)

func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Chdir moves the process into dir. The returned restore function moves it
// back to wherever it was before and must be called on every exit path.
func Chdir(dir string) (restore func() error, err error) {
	orig, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "cannot determine working directory")
	}
	if err := os.Chdir(dir); err != nil {
		return nil, errors.Wrapf(err, "cannot enter %s", dir)
	}
	return func() error {
		return errors.Wrapf(os.Chdir(orig), "cannot restore working directory %s", orig)
	}, nil
}

// InDir runs fn with the working directory set to dir.
func InDir(dir string, fn func() error) (err error) {
	restore, err := Chdir(dir)
	if err != nil {
		return err
	}
	defer func() {
		err = CombineErrors(err, restore())
	}()
	return fn()
}

func CombineErrors(errors ...error) (err error) {
	for _, e := range errors {
		switch {
		case e == nil:
			// ignore
		case err == nil:
			err = e
		default:
			err = multierror.Append(err, e)
		}
	}
	return err
}
