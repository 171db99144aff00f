// SPDX-License-Identifier: ice License 1.0

package terror

import (
	"github.com/pkg/errors"
)

func New(err error, data map[string]any) *Err {
	return &Err{error: err, Data: data}
}

func As(err error) *Err {
	tErr := new(Err)
	if ok := errors.As(err, tErr); ok {
		return tErr
	}

	return nil
}

// All returns every *Err found in err, looking inside aggregated (multi) errors as well.
func All(err error) []*Err {
	if err == nil {
		return nil
	}
	var multi multiError
	if errors.As(err, &multi) {
		wrapped := multi.WrappedErrors()
		all := make([]*Err, 0, len(wrapped))
		for _, e := range wrapped {
			all = append(all, All(e)...)
		}

		return all
	}
	if tErr := As(err); tErr != nil {
		return []*Err{tErr}
	}

	return nil
}

func (e *Err) Value(key string) any {
	if e == nil || e.Data == nil {
		return nil
	}

	return e.Data[key]
}

func (e *Err) Is(er error) bool {
	return errors.Is(er, e.error)
}

func (e *Err) Unwrap() error {
	return e.error
}

func (e *Err) As(err any) bool {
	o, ok := err.(*Err)
	if ok {
		*o = *e
	}

	return ok
}
