// Package binder converts typed models to and from JSON.
//
// Models describe their own wire shape by implementing Model with an explicit reader and
// writer built on go-jsonstream, so no reflection is involved. The binder supplies the policy
// that every model shares: absent fields are omitted when writing, unknown properties are
// skipped when reading, and anything that does not fit the declared shape is reported as a
// *MalformedPayloadError.
package binder

import (
	"reflect"

	"github.com/pkg/errors"
	"gopkg.in/launchdarkly/go-jsonstream.v1/jreader"
	"gopkg.in/launchdarkly/go-jsonstream.v1/jwriter"
)

// Serializable is implemented by models that can be sent as a request body.
type Serializable interface {
	// WriteJSON writes the model as a JSON object.
	WriteJSON(w *jwriter.Writer)
}

// Deserializable is implemented by pointers to models that can be read from a response body.
type Deserializable interface {
	// ReadJSON populates the model from a JSON object. It must first reset the model to its
	// zero value, so that declared properties missing from the JSON are absent even when the
	// model is reused. Properties that the model does not declare must be left unread so that
	// the reader skips them.
	ReadJSON(r *jreader.Reader)
}

// Model is implemented by models that are bound in both directions.
type Model interface {
	Serializable
	Deserializable
}

// IsNil reports whether model is nil, either as an interface or as a typed nil pointer.
func IsNil(model Serializable) bool {
	if model == nil {
		return true
	}
	v := reflect.ValueOf(model)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// Serialize encodes a model as JSON. Properties are written in the order the model declares
// them.
func Serialize(model Serializable) ([]byte, error) {
	if IsNil(model) {
		return nil, errors.New("cannot serialize a nil model")
	}
	w := jwriter.NewWriter()
	model.WriteJSON(&w)
	if err := w.Error(); err != nil {
		return nil, errors.Wrap(err, "failed to serialize model")
	}
	return w.Bytes(), nil
}

// Deserialize populates a model from JSON data.
func Deserialize(data []byte, model Deserializable) error {
	r := jreader.NewReader(data)
	model.ReadJSON(&r)
	if err := r.Error(); err != nil {
		return &MalformedPayloadError{Payload: string(data), Err: err}
	}
	if err := r.RequireEOF(); err != nil {
		return &MalformedPayloadError{Payload: string(data), Err: err}
	}
	return nil
}

// As deserializes data into a new value of the model type M.
func As[M any, PM interface {
	*M
	Deserializable
}](data []byte) (M, error) {
	var m M
	err := Deserialize(data, PM(&m))
	return m, err
}
