package spec

import "fmt"

const (
	minStatusCode = 100
	maxStatusCode = 599
)

// ResponseSpecification describes the expected outcome of a request: exactly one status code,
// plus which parts of the response to log.
type ResponseSpecification struct {
	expectedStatus int
	logStatus      bool
	logHeaders     bool
	logBody        bool
}

// NewResponseSpec builds a ResponseSpecification. The status must be a valid HTTP status code.
func NewResponseSpec(expectedStatus int, logStatus, logBody bool) (ResponseSpecification, error) {
	if expectedStatus < minStatusCode || expectedStatus > maxStatusCode {
		return ResponseSpecification{}, invalidConfig("expectedStatus",
			"%d is not in the HTTP status range %d-%d", expectedStatus, minStatusCode, maxStatusCode)
	}
	return ResponseSpecification{
		expectedStatus: expectedStatus,
		logStatus:      logStatus,
		logBody:        logBody,
	}, nil
}

func (s ResponseSpecification) ExpectedStatus() int { return s.expectedStatus }
func (s ResponseSpecification) LogStatus() bool     { return s.logStatus }
func (s ResponseSpecification) LogHeaders() bool    { return s.logHeaders }
func (s ResponseSpecification) LogBody() bool       { return s.logBody }

// WithHeaderLogging returns a copy of the specification that also logs response headers.
func (s ResponseSpecification) WithHeaderLogging() ResponseSpecification {
	ret := s
	ret.logHeaders = true
	return ret
}

func (s ResponseSpecification) String() string {
	return fmt.Sprintf("expect status %d", s.expectedStatus)
}
