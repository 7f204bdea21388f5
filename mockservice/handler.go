// Package mockservice is an in-process fake of the reqres.in user API. It implements just
// enough of the service for the contract suite to run without network access.
package mockservice

import (
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/launchdarkly/http-contract-tests/binder"
	"github.com/launchdarkly/http-contract-tests/framework"
	"github.com/launchdarkly/http-contract-tests/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"gopkg.in/launchdarkly/go-jsonstream.v1/jwriter"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// RegistrationToken is the token the service returns for every successful registration.
const RegistrationToken = "QpwL5tke4Pnpja7X4"

const (
	timestampFormat = "2006-01-02T15:04:05.000Z"
	firstCreatedID  = 100

	errMissingEmail    = "Missing email or username"
	errMissingPassword = "Missing password"
	errUndefinedUser   = "Note: Only defined users succeed registration"
)

type user struct {
	id        int
	email     string
	firstName string
	lastName  string
}

var knownUsers = []user{
	{1, "george.bluth@reqres.in", "George", "Bluth"},
	{2, "janet.weaver@reqres.in", "Janet", "Weaver"},
	{3, "emma.wong@reqres.in", "Emma", "Wong"},
	{4, "eve.holt@reqres.in", "Eve", "Holt"},
	{5, "charles.morris@reqres.in", "Charles", "Morris"},
	{6, "tracey.ramos@reqres.in", "Tracey", "Ramos"},
	{7, "michael.lawson@reqres.in", "Michael", "Lawson"},
	{8, "lindsay.ferguson@reqres.in", "Lindsay", "Ferguson"},
	{9, "tobias.funke@reqres.in", "Tobias", "Funke"},
	{10, "byron.fields@reqres.in", "Byron", "Fields"},
	{11, "george.edwards@reqres.in", "George", "Edwards"},
	{12, "rachel.howell@reqres.in", "Rachel", "Howell"},
}

type service struct {
	logger framework.Logger
	now    func() time.Time
	nextID int
	lock   sync.Mutex
}

// NewHandler returns the routes of the user API under /api. Created users are not stored;
// like the real service, POST /users only echoes the request with a new ID.
func NewHandler(logger framework.Logger) http.Handler {
	if logger == nil {
		logger = framework.NullLogger()
	}
	s := &service{logger: logger, now: time.Now, nextID: firstCreatedID}

	r := chi.NewRouter()
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, "reqres-mock")
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", s.createUser)
		r.Get("/users/{id}", s.getUser)
		r.Put("/users/{id}", s.updateUser)
		r.Patch("/users/{id}", s.updateUser)
		r.Delete("/users/{id}", s.deleteUser)
		r.Post("/register", s.register)
	})
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusNotFound, emptyObject)
	})
	return r
}

func (s *service) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)
		s.logger.Printf("%s %s -> %d", req.Method, req.URL.Path, ww.Status())
	})
}

func (s *service) createUser(w http.ResponseWriter, req *http.Request) {
	var body models.CreateUser
	if !readBody(w, req, &body) {
		return
	}
	s.lock.Lock()
	id := s.nextID
	s.nextID++
	s.lock.Unlock()

	writeModel(w, http.StatusCreated, models.CreateUserResponse{
		Name:      body.Name,
		Job:       body.Job,
		ID:        ldvalue.NewOptionalString(strconv.Itoa(id)),
		CreatedAt: ldvalue.NewOptionalString(s.timestamp()),
	})
}

func (s *service) getUser(w http.ResponseWriter, req *http.Request) {
	u, ok := findUser(chi.URLParam(req, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, emptyObject)
		return
	}
	writeJSON(w, http.StatusOK, func(w *jwriter.Writer) {
		obj := w.Object()
		data := obj.Name("data").Object()
		data.Name("id").Int(u.id)
		data.Name("email").String(u.email)
		data.Name("first_name").String(u.firstName)
		data.Name("last_name").String(u.lastName)
		data.End()
		obj.End()
	})
}

func (s *service) updateUser(w http.ResponseWriter, req *http.Request) {
	var body models.UpdateUser
	if !readBody(w, req, &body) {
		return
	}
	writeModel(w, http.StatusOK, models.UpdateUserResponse{
		Name:      body.Name,
		Job:       body.Job,
		UpdatedAt: ldvalue.NewOptionalString(s.timestamp()),
	})
}

func (s *service) deleteUser(w http.ResponseWriter, req *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *service) register(w http.ResponseWriter, req *http.Request) {
	var body models.RegisterUser
	if !readBody(w, req, &body) {
		return
	}
	var failure string
	switch {
	case body.Email.StringValue() == "":
		failure = errMissingEmail
	case body.Password.StringValue() == "":
		failure = errMissingPassword
	}
	if failure == "" {
		if u, ok := findUserByEmail(body.Email.StringValue()); ok {
			writeModel(w, http.StatusOK, models.RegisterUserResponse{
				ID:    ldvalue.NewOptionalInt(u.id),
				Token: ldvalue.NewOptionalString(RegistrationToken),
			})
			return
		}
		failure = errUndefinedUser
	}
	writeModel(w, http.StatusBadRequest, models.RegisterUserResponse{Error: ldvalue.NewOptionalString(failure)})
}

func (s *service) timestamp() string {
	return s.now().UTC().Format(timestampFormat)
}

func findUser(idParam string) (user, bool) {
	id, err := strconv.Atoi(idParam)
	if err != nil {
		return user{}, false
	}
	for _, u := range knownUsers {
		if u.id == id {
			return u, true
		}
	}
	return user{}, false
}

func findUserByEmail(email string) (user, bool) {
	for _, u := range knownUsers {
		if u.email == email {
			return u, true
		}
	}
	return user{}, false
}

func readBody(w http.ResponseWriter, req *http.Request, model binder.Deserializable) bool {
	data, err := io.ReadAll(req.Body)
	if err == nil && len(data) > 0 {
		err = binder.Deserialize(data, model)
	}
	if err != nil {
		writeModel(w, http.StatusBadRequest, models.RegisterUserResponse{Error: ldvalue.NewOptionalString(err.Error())})
		return false
	}
	return true
}

func emptyObject(w *jwriter.Writer) {
	obj := w.Object()
	obj.End()
}

func writeModel(w http.ResponseWriter, status int, model binder.Serializable) {
	writeJSON(w, status, model.WriteJSON)
}

func writeJSON(w http.ResponseWriter, status int, write func(*jwriter.Writer)) {
	jw := jwriter.NewWriter()
	write(&jw)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(jw.Bytes())
}
