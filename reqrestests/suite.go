package reqrestests

import (
	"github.com/launchdarkly/http-contract-tests/framework"
)

func RunTestSuite(
	env *Environment,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, env, func(c *framework.Context) {
		t := newTestScope(c, env)

		t.Run("users", DoUserTests)
		t.Run("registration", DoRegistrationTests)
	})
}
