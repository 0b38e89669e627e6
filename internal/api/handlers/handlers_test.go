package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/linskybing/formify-go/internal/application"
	"github.com/linskybing/formify-go/internal/application/builder"
	"github.com/linskybing/formify-go/internal/domain/form"
	"github.com/linskybing/formify-go/internal/repository"
	"github.com/linskybing/formify-go/internal/repository/mock"
	"github.com/linskybing/formify-go/internal/session"
	"github.com/linskybing/formify-go/pkg/response"
	"github.com/linskybing/formify-go/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	owner    = session.Principal{SessionID: "s-1", UserID: 1, Email: "owner@test.com", Role: "user"}
	intruder = session.Principal{SessionID: "s-2", UserID: 2, Email: "intruder@test.com", Role: "user"}
)

func init() {
	gin.SetMode(gin.TestMode)
}

// withPrincipal plays the part of the auth middleware.
func withPrincipal(p *session.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p != nil {
			c.Set(utils.PrincipalKey, *p)
		}
		c.Next()
	}
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func publishedForm() form.Form {
	return form.Form{
		ID:      "f-1",
		OwnerID: owner.UserID,
		Title:   "Signup",
		Status:  form.StatusPublished,
		Elements: []form.Element{
			{ID: "name", Type: form.TypeText, Label: "Name", Required: true},
			{ID: "news", Type: form.TypeCheckbox, Label: "Newsletter"},
		},
		AllowAnonymous: true,
	}
}

func setupFormService(t *testing.T) (*application.FormService, *mock.MockFormRepo, *mock.MockSubmissionRepo) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	forms := mock.NewMockFormRepo(ctrl)
	subs := mock.NewMockSubmissionRepo(ctrl)
	svc := application.NewFormService(&repository.Repos{Form: forms, Submission: subs})
	svc.Origin = "https://forms.test"
	return svc, forms, subs
}

// --------------------- statusFor ---------------------
func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&form.ValidationError{Fields: map[string]string{"a": "required"}}, http.StatusBadRequest},
		{application.ErrNotAuthenticated, http.StatusUnauthorized},
		{application.ErrNotAuthorized, http.StatusForbidden},
		{application.ErrFormNotFound, http.StatusNotFound},
		{application.ErrFormNotPublished, http.StatusNotFound},
		{builder.ErrSessionNotFound, http.StatusNotFound},
		{form.ErrEmptyForm, http.StatusConflict},
		{builder.ErrNothingToSave, http.StatusConflict},
		{fmt.Errorf("%w: Maximum 50 elements allowed", builder.ErrElementLimit), http.StatusUnprocessableEntity},
		{builder.ErrInvalidPattern, http.StatusBadRequest},
		{application.ErrStorageUnavailable, http.StatusServiceUnavailable},
		{fmt.Errorf("%w: timeout", builder.ErrSyncFailed), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.err), tc.err.Error())
	}
}

// --------------------- Public JSON ---------------------
func TestPublicHandler_CreateSubmission(t *testing.T) {
	path := "/api/public/forms/f-1/submissions"

	newRouter := func(svc *application.FormService) *gin.Engine {
		r := gin.New()
		h := NewPublicHandler(svc)
		r.POST("/api/public/forms/:id/submissions", withPrincipal(nil), h.CreateSubmission)
		return r
	}

	t.Run("Success", func(t *testing.T) {
		svc, forms, subs := setupFormService(t)
		forms.EXPECT().GetFormByID("f-1").Return(publishedForm(), nil).Times(2)
		subs.EXPECT().CreateSubmission(gomock.Any()).DoAndReturn(func(s *form.Submission) error {
			assert.Equal(t, "Ada", s.Data.Data()["name"].Str)
			assert.True(t, s.Data.Data()["news"].Bool)
			assert.Nil(t, s.SubmittedBy)
			return nil
		})

		w := doJSON(newRouter(svc), http.MethodPost, path, map[string]any{
			"values": map[string]any{"name": "Ada", "news": true},
		})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Missing required value", func(t *testing.T) {
		svc, forms, _ := setupFormService(t)
		forms.EXPECT().GetFormByID("f-1").Return(publishedForm(), nil).Times(2)

		w := doJSON(newRouter(svc), http.MethodPost, path, map[string]any{
			"values": map[string]any{"news": false},
		})
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp response.ValidationErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Fields, "name")
	})

	t.Run("Wrong value kind", func(t *testing.T) {
		svc, forms, _ := setupFormService(t)
		forms.EXPECT().GetFormByID("f-1").Return(publishedForm(), nil)

		w := doJSON(newRouter(svc), http.MethodPost, path, map[string]any{
			"values": map[string]any{"name": "Ada", "news": "yes"},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Draft form", func(t *testing.T) {
		svc, forms, _ := setupFormService(t)
		draft := publishedForm()
		draft.Status = form.StatusDraft
		forms.EXPECT().GetFormByID("f-1").Return(draft, nil)

		w := doJSON(newRouter(svc), http.MethodPost, path, map[string]any{
			"values": map[string]any{"name": "Ada"},
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Sign-in required", func(t *testing.T) {
		svc, forms, _ := setupFormService(t)
		private := publishedForm()
		private.AllowAnonymous = false
		forms.EXPECT().GetFormByID("f-1").Return(private, nil).Times(2)

		w := doJSON(newRouter(svc), http.MethodPost, path, map[string]any{
			"values": map[string]any{"name": "Ada"},
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// --------------------- Public HTML ---------------------
func TestPublicHandler_ShowForm(t *testing.T) {
	svc, forms, _ := setupFormService(t)
	forms.EXPECT().GetFormByID("f-1").Return(publishedForm(), nil).Times(2)
	forms.EXPECT().GetFormByID("missing").Return(form.Form{}, gorm.ErrRecordNotFound)

	r := gin.New()
	r.GET("/forms/:id", NewPublicHandler(svc).ShowForm)

	w := doJSON(r, http.MethodGet, "/forms/f-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Signup")
	assert.Contains(t, w.Body.String(), `name="name"`)

	w = doJSON(r, http.MethodGet, "/forms/f-1?embed=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "frame-ancestors *", w.Header().Get("Content-Security-Policy"))
	assert.Contains(t, w.Body.String(), `action="/forms/f-1?embed=true"`)

	w = doJSON(r, http.MethodGet, "/forms/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublicHandler_SubmitForm(t *testing.T) {
	post := func(r http.Handler, values url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/forms/f-1", strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("Thank-you page", func(t *testing.T) {
		svc, forms, subs := setupFormService(t)
		forms.EXPECT().GetFormByID("f-1").Return(publishedForm(), nil).Times(2)
		subs.EXPECT().CreateSubmission(gomock.Any()).Return(nil)

		r := gin.New()
		r.POST("/forms/:id", NewPublicHandler(svc).SubmitForm)

		w := post(r, url.Values{"name": {"Ada"}, "news": {"on"}})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Thank you!")
	})

	t.Run("Errors re-render the page", func(t *testing.T) {
		svc, forms, _ := setupFormService(t)
		forms.EXPECT().GetFormByID("f-1").Return(publishedForm(), nil)

		r := gin.New()
		r.POST("/forms/:id", NewPublicHandler(svc).SubmitForm)

		w := post(r, url.Values{"news": {"on"}})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Please correct the highlighted fields.")
		assert.NotContains(t, w.Body.String(), "Thank you!")
	})
}

// --------------------- Builder ---------------------
type builderFixture struct {
	router   *gin.Engine
	forms    *mock.MockFormRepo
	registry *builder.Registry
}

func setupBuilder(t *testing.T, p session.Principal) builderFixture {
	svc, forms, _ := setupFormService(t)
	reg := builder.NewRegistry(svc, builder.Options{MaxElements: 2, Origin: svc.Origin})
	t.Cleanup(func() { reg.Shutdown(context.Background()) })

	r := gin.New()
	rg := r.Group("/", withPrincipal(&p))
	h := NewBuilderHandler(reg)
	sessions := rg.Group("/builder/sessions")
	sessions.POST("", h.OpenSession)
	sessions.GET("/:sid", h.GetSession)
	sessions.POST("/:sid/elements", h.InsertElement)
	sessions.PATCH("/:sid/elements/:eid", h.UpdateElement)
	sessions.POST("/:sid/save", h.Save)
	sessions.POST("/:sid/publish", h.Publish)
	sessions.PUT("/:sid/preview/values/:eid", h.SetPreviewValue)
	sessions.POST("/:sid/preview/submit", h.SubmitPreview)

	return builderFixture{router: r, forms: forms, registry: reg}
}

func openSession(t *testing.T, r http.Handler) SessionView {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/builder/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var v SessionView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func insert(t *testing.T, r http.Handler, sid string, typ form.ElementType) (int, SessionView) {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/builder/sessions/"+sid+"/elements", map[string]any{"type": typ})
	var v SessionView
	if w.Code == http.StatusCreated {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	}
	return w.Code, v
}

func TestBuilderHandler_OpenInsertPublish(t *testing.T) {
	fx := setupBuilder(t, owner)

	var stored form.Form
	fx.forms.EXPECT().CreateForm(gomock.Any()).DoAndReturn(func(f *form.Form) error {
		stored = *f
		return nil
	})
	fx.forms.EXPECT().GetFormByID(gomock.Any()).DoAndReturn(func(string) (form.Form, error) {
		return stored, nil
	}).AnyTimes()
	fx.forms.EXPECT().SaveForm(gomock.Any()).DoAndReturn(func(f *form.Form) error {
		stored = *f
		return nil
	}).AnyTimes()

	v := openSession(t, fx.router)
	assert.Equal(t, builder.DefaultTitle, v.Form.Title)
	assert.Empty(t, v.Form.ID)

	w := doJSON(fx.router, http.MethodPost, "/builder/sessions/"+v.SessionID+"/publish", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	code, v := insert(t, fx.router, v.SessionID, form.TypeText)
	require.Equal(t, http.StatusCreated, code)
	require.Len(t, v.Form.Elements, 1)
	assert.Equal(t, "Text Field", v.Form.Elements[0].Label)

	code, _ = insert(t, fx.router, v.SessionID, "slider")
	assert.Equal(t, http.StatusBadRequest, code)

	w = doJSON(fx.router, http.MethodPost, "/builder/sessions/"+v.SessionID+"/publish",
		map[string]any{"collect_emails": true})
	require.Equal(t, http.StatusOK, w.Code)

	var published form.Form
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &published))
	assert.Equal(t, form.StatusPublished, published.Status)
	assert.Equal(t, "https://forms.test/forms/"+published.ID, published.ShareURL)
	assert.Contains(t, published.EmbedCode, published.ShareURL+"?embed=true")
	assert.True(t, published.CollectEmails)
	assert.Equal(t, stored.ID, published.ID)
}

func TestBuilderHandler_ElementLimit(t *testing.T) {
	fx := setupBuilder(t, owner)
	v := openSession(t, fx.router)

	for i := 0; i < 2; i++ {
		code, _ := insert(t, fx.router, v.SessionID, form.TypeEmail)
		require.Equal(t, http.StatusCreated, code)
	}
	code, _ := insert(t, fx.router, v.SessionID, form.TypeEmail)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}

func TestBuilderHandler_SaveUntouched(t *testing.T) {
	fx := setupBuilder(t, owner)
	v := openSession(t, fx.router)

	w := doJSON(fx.router, http.MethodPost, "/builder/sessions/"+v.SessionID+"/save", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBuilderHandler_OtherUsersSession(t *testing.T) {
	fx := setupBuilder(t, owner)
	v := openSession(t, fx.router)

	_, err := fx.registry.Get(owner, v.SessionID)
	require.NoError(t, err)
	_, err = fx.registry.Get(intruder, v.SessionID)
	assert.ErrorIs(t, err, builder.ErrSessionNotFound)

	w := doJSON(fx.router, http.MethodGet, "/builder/sessions/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBuilderHandler_Preview(t *testing.T) {
	fx := setupBuilder(t, owner)
	v := openSession(t, fx.router)

	_, v = insert(t, fx.router, v.SessionID, form.TypeText)
	_, v = insert(t, fx.router, v.SessionID, form.TypeCheckbox)
	textID, boxID := v.Form.Elements[0].ID, v.Form.Elements[1].ID
	base := "/builder/sessions/" + v.SessionID

	w := doJSON(fx.router, http.MethodPatch, base+"/elements/"+textID, map[string]any{"required": true})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(fx.router, http.MethodPost, base+"/preview/submit", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var invalid response.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &invalid))
	assert.Contains(t, invalid.Fields, textID)

	w = doJSON(fx.router, http.MethodPut, base+"/preview/values/"+boxID, map[string]any{"value": "yes"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(fx.router, http.MethodPut, base+"/preview/values/"+textID, map[string]any{"value": "hello"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(fx.router, http.MethodPost, base+"/preview/submit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var state builder.PreviewState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.True(t, state.Submitted)
	assert.Empty(t, state.Errors)
}
