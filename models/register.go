package models

import (
	"github.com/launchdarkly/http-contract-tests/binder"

	"gopkg.in/launchdarkly/go-jsonstream.v1/jreader"
	"gopkg.in/launchdarkly/go-jsonstream.v1/jwriter"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// RegisterUser is the body of POST /register. Either field may be left out on purpose to
// provoke a validation error.
type RegisterUser struct {
	Email    ldvalue.OptionalString
	Password ldvalue.OptionalString
}

// RegisterUserResponse covers both outcomes of POST /register: ID and Token on success, Error
// on a 400 response.
type RegisterUserResponse struct {
	ID    ldvalue.OptionalInt
	Token ldvalue.OptionalString
	Error ldvalue.OptionalString
}

func (m RegisterUser) WriteJSON(w *jwriter.Writer) {
	obj := w.Object()
	binder.WriteString(&obj, "email", m.Email)
	binder.WriteString(&obj, "password", m.Password)
	obj.End()
}

func (m *RegisterUser) ReadJSON(r *jreader.Reader) {
	*m = RegisterUser{}
	for obj := r.Object(); obj.Next(); {
		switch string(obj.Name()) {
		case "email":
			m.Email = binder.ReadString(r)
		case "password":
			m.Password = binder.ReadString(r)
		}
	}
}

func (m RegisterUserResponse) WriteJSON(w *jwriter.Writer) {
	obj := w.Object()
	binder.WriteInt(&obj, "id", m.ID)
	binder.WriteString(&obj, "token", m.Token)
	binder.WriteString(&obj, "error", m.Error)
	obj.End()
}

func (m *RegisterUserResponse) ReadJSON(r *jreader.Reader) {
	*m = RegisterUserResponse{}
	for obj := r.Object(); obj.Next(); {
		switch string(obj.Name()) {
		case "id":
			m.ID = binder.ReadInt(r)
		case "token":
			m.Token = binder.ReadString(r)
		case "error":
			m.Error = binder.ReadString(r)
		}
	}
}
