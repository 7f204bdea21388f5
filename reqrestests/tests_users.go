package reqrestests

import (
	"github.com/launchdarkly/http-contract-tests/models"

	"github.com/stretchr/testify/assert"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func DoUserTests(t *T) {
	t.Run("create user", func(t *T) {
		body := models.CreateUser{
			Name: ldvalue.NewOptionalString("Elena"),
			Job:  ldvalue.NewOptionalString("QA"),
		}
		response := StepValue(t, "Create user", func() (models.CreateUserResponse, error) {
			return CallAndExtract[models.CreateUserResponse](t, "POST", "/users", body, ResponseCreated)
		})

		t.Verify(func(c *Checks) {
			assert.Equal(c, "Elena", response.Name.StringValue())
			assert.Equal(c, "QA", response.Job.StringValue())
			assert.True(c, response.ID.IsDefined(), "id should be present")
			assert.True(c, response.CreatedAt.IsDefined(), "createdAt should be present")
		})
	})

	t.Run("user not found", func(t *T) {
		t.Step("Get user that does not exist", func() error {
			_, err := t.Call("GET", "/users/23", nil, ResponseNotFound)
			return err
		})
	})

	t.Run("update user", func(t *T) {
		body := models.UpdateUser{
			Name: ldvalue.NewOptionalString("Elena"),
			Job:  ldvalue.NewOptionalString("QA"),
		}
		response := StepValue(t, "Update user", func() (models.UpdateUserResponse, error) {
			return CallAndExtract[models.UpdateUserResponse](t, "PATCH", "/users/2", body, ResponseOK)
		})

		t.Verify(func(c *Checks) {
			assert.Equal(c, "Elena", response.Name.StringValue())
			assert.Equal(c, "QA", response.Job.StringValue())
			assert.True(c, response.UpdatedAt.IsDefined(), "updatedAt should be present")
		})
	})
}
