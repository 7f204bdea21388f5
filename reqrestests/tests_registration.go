package reqrestests

import (
	"github.com/launchdarkly/http-contract-tests/models"

	"github.com/stretchr/testify/assert"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	registeredEmail    = "eve.holt@reqres.in"
	registeredPassword = "pistol"
)

func DoRegistrationTests(t *T) {
	t.Run("register user", func(t *T) {
		body := models.RegisterUser{
			Email:    ldvalue.NewOptionalString(registeredEmail),
			Password: ldvalue.NewOptionalString(registeredPassword),
		}
		response := register(t, "Register user", body, ResponseOK)

		t.Verify(func(c *Checks) {
			assert.Equal(c, ldvalue.NewOptionalInt(4), response.ID)
			assert.Equal(c, "QpwL5tke4Pnpja7X4", response.Token.StringValue())
		})
	})

	t.Run("missing password", func(t *T) {
		body := models.RegisterUser{Email: ldvalue.NewOptionalString(registeredEmail)}
		response := register(t, "Register user with missing password", body, ResponseBadRequest)

		t.Verify(func(c *Checks) {
			assert.Equal(c, "Missing password", response.Error.StringValue())
		})
	})

	t.Run("missing email", func(t *T) {
		body := models.RegisterUser{Password: ldvalue.NewOptionalString(registeredPassword)}
		response := register(t, "Register user with missing email", body, ResponseBadRequest)

		t.Verify(func(c *Checks) {
			assert.Equal(c, "Missing email or username", response.Error.StringValue())
		})
	})
}

func register(t *T, stepName string, body models.RegisterUser, responseSpec string) models.RegisterUserResponse {
	return StepValue(t, stepName, func() (models.RegisterUserResponse, error) {
		return CallAndExtract[models.RegisterUserResponse](t, "POST", "/register", body, responseSpec)
	})
}
