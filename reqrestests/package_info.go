// Package reqrestests contains the contract tests for the reqres.in user API and their
// supporting API.
//
// Infrastructure that is not specific to this service, such as running tests outside of the Go
// test runner, building requests from specifications, and recording steps, is in the lower-level
// framework, spec, executor, and steps packages.
package reqrestests
