// Package models contains the request and response bodies of the user API. Every field is an
// optional value, so tests can tell a missing property from an empty one.
package models

import (
	"github.com/launchdarkly/http-contract-tests/binder"

	"gopkg.in/launchdarkly/go-jsonstream.v1/jreader"
	"gopkg.in/launchdarkly/go-jsonstream.v1/jwriter"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// CreateUser is the body of POST /users.
type CreateUser struct {
	Name ldvalue.OptionalString
	Job  ldvalue.OptionalString
}

// CreateUserResponse is returned by POST /users. ID and CreatedAt are assigned by the server.
type CreateUserResponse struct {
	Name      ldvalue.OptionalString
	Job       ldvalue.OptionalString
	ID        ldvalue.OptionalString
	CreatedAt ldvalue.OptionalString
}

// UpdateUser is the body of PATCH /users/{id}.
type UpdateUser struct {
	Name ldvalue.OptionalString
	Job  ldvalue.OptionalString
}

// UpdateUserResponse is returned by PATCH /users/{id}.
type UpdateUserResponse struct {
	Name      ldvalue.OptionalString
	Job       ldvalue.OptionalString
	UpdatedAt ldvalue.OptionalString
}

func (m CreateUser) WriteJSON(w *jwriter.Writer) {
	obj := w.Object()
	binder.WriteString(&obj, "name", m.Name)
	binder.WriteString(&obj, "job", m.Job)
	obj.End()
}

func (m *CreateUser) ReadJSON(r *jreader.Reader) {
	*m = CreateUser{}
	for obj := r.Object(); obj.Next(); {
		switch string(obj.Name()) {
		case "name":
			m.Name = binder.ReadString(r)
		case "job":
			m.Job = binder.ReadString(r)
		}
	}
}

func (m CreateUserResponse) WriteJSON(w *jwriter.Writer) {
	obj := w.Object()
	binder.WriteString(&obj, "name", m.Name)
	binder.WriteString(&obj, "job", m.Job)
	binder.WriteString(&obj, "id", m.ID)
	binder.WriteString(&obj, "createdAt", m.CreatedAt)
	obj.End()
}

func (m *CreateUserResponse) ReadJSON(r *jreader.Reader) {
	*m = CreateUserResponse{}
	for obj := r.Object(); obj.Next(); {
		switch string(obj.Name()) {
		case "name":
			m.Name = binder.ReadString(r)
		case "job":
			m.Job = binder.ReadString(r)
		case "id":
			m.ID = binder.ReadString(r)
		case "createdAt":
			m.CreatedAt = binder.ReadString(r)
		}
	}
}

func (m UpdateUser) WriteJSON(w *jwriter.Writer) {
	obj := w.Object()
	binder.WriteString(&obj, "name", m.Name)
	binder.WriteString(&obj, "job", m.Job)
	obj.End()
}

func (m *UpdateUser) ReadJSON(r *jreader.Reader) {
	*m = UpdateUser{}
	for obj := r.Object(); obj.Next(); {
		switch string(obj.Name()) {
		case "name":
			m.Name = binder.ReadString(r)
		case "job":
			m.Job = binder.ReadString(r)
		}
	}
}

func (m UpdateUserResponse) WriteJSON(w *jwriter.Writer) {
	obj := w.Object()
	binder.WriteString(&obj, "name", m.Name)
	binder.WriteString(&obj, "job", m.Job)
	binder.WriteString(&obj, "updatedAt", m.UpdatedAt)
	obj.End()
}

func (m *UpdateUserResponse) ReadJSON(r *jreader.Reader) {
	*m = UpdateUserResponse{}
	for obj := r.Object(); obj.Next(); {
		switch string(obj.Name()) {
		case "name":
			m.Name = binder.ReadString(r)
		case "job":
			m.Job = binder.ReadString(r)
		case "updatedAt":
			m.UpdatedAt = binder.ReadString(r)
		}
	}
}
