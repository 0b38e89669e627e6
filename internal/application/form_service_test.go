package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/linskybing/formify-go/internal/domain/form"
	"github.com/linskybing/formify-go/internal/repository"
	"github.com/linskybing/formify-go/internal/repository/mock"
	"github.com/linskybing/formify-go/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	alice   = session.Principal{SessionID: "s-a", UserID: 1, Email: "alice@test.com"}
	mallory = session.Principal{SessionID: "s-m", UserID: 2, Email: "mallory@test.com"}
	fixedAt = time.Date(2025, 5, 4, 12, 0, 0, 0, time.UTC)
)

type formMocks struct {
	form        *mock.MockFormRepo
	submission  *mock.MockSubmissionRepo
	integration *mock.MockIntegrationRepo
}

type recordingNotifier struct {
	calls []form.Submission
}

func (n *recordingNotifier) Notify(_ form.Form, sub form.Submission) {
	n.calls = append(n.calls, sub)
}

func setupFormServiceMocks(t *testing.T) (*FormService, formMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	m := formMocks{
		form:        mock.NewMockFormRepo(ctrl),
		submission:  mock.NewMockSubmissionRepo(ctrl),
		integration: mock.NewMockIntegrationRepo(ctrl),
	}
	repos := &repository.Repos{
		Form:        m.form,
		Submission:  m.submission,
		Integration: m.integration,
	}
	svc := NewFormService(repos)
	svc.Origin = "https://forms.test"
	svc.now = func() time.Time { return fixedAt }
	return svc, m
}

func storedForm() form.Form {
	return form.Form{
		ID:      "f-1",
		OwnerID: alice.UserID,
		Title:   "Signup",
		Status:  form.StatusDraft,
		Elements: []form.Element{
			{ID: "name", Type: form.TypeText, Label: "Name", Required: true, Validation: &form.Validation{MaxLength: 10}},
			{ID: "news", Type: form.TypeCheckbox, Label: "Newsletter"},
		},
		AllowAnonymous: true,
	}
}

func publishedForm() form.Form {
	f := storedForm()
	f.Status = form.StatusPublished
	return f
}

// --------------------- CreateForm ---------------------
func TestCreateForm_Success(t *testing.T) {
	svc, m := setupFormServiceMocks(t)

	m.form.EXPECT().CreateForm(gomock.Any()).DoAndReturn(func(f *form.Form) error {
		assert.NotEmpty(t, f.ID)
		assert.Equal(t, alice.UserID, f.OwnerID)
		return nil
	})

	f, err := svc.CreateForm(context.Background(), alice, form.CreateFormDTO{
		Title:    "<b>Feedback</b>",
		Elements: []form.Element{{ID: "e1", Type: form.TypeText, Label: "Q<script>x</script>"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Feedback", f.Title)
	assert.Equal(t, "Q", f.Elements[0].Label)
	assert.Equal(t, form.StatusDraft, f.Status)
	assert.True(t, f.AllowAnonymous)
}

func TestCreateForm_DefaultTitleAndErrors(t *testing.T) {
	svc, m := setupFormServiceMocks(t)

	m.form.EXPECT().CreateForm(gomock.Any()).Return(nil)
	f, err := svc.CreateForm(context.Background(), alice, form.CreateFormDTO{})
	require.NoError(t, err)
	assert.Equal(t, DefaultFormTitle, f.Title)
	assert.NotNil(t, f.Elements)

	_, err = svc.CreateForm(context.Background(), session.Principal{}, form.CreateFormDTO{Title: "x"})
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = svc.CreateForm(context.Background(), alice, form.CreateFormDTO{
		Elements: []form.Element{{ID: "a", Type: form.TypeSelect, Label: "Pick"}},
	})
	assert.ErrorIs(t, err, form.ErrOptionsRequired)
}

// --------------------- UpdateForm ---------------------
func TestUpdateForm_Ownership(t *testing.T) {
	svc, m := setupFormServiceMocks(t)

	m.form.EXPECT().GetFormByID("f-1").Return(storedForm(), nil)
	_, err := svc.UpdateForm(context.Background(), mallory, "f-1", form.UpdateFormDTO{Title: "hijack"})
	assert.ErrorIs(t, err, ErrNotAuthorized)

	m.form.EXPECT().GetFormByID("missing").Return(form.Form{}, gorm.ErrRecordNotFound)
	_, err = svc.UpdateForm(context.Background(), alice, "missing", form.UpdateFormDTO{Title: "x"})
	assert.ErrorIs(t, err, ErrFormNotFound)
}

func TestUpdateForm_OptionalStatus(t *testing.T) {
	svc, m := setupFormServiceMocks(t)

	m.form.EXPECT().GetFormByID("f-1").Return(storedForm(), nil).Times(2)
	m.form.EXPECT().SaveForm(gomock.Any()).Return(nil).Times(2)

	f, err := svc.UpdateForm(context.Background(), alice, "f-1", form.UpdateFormDTO{Title: "Renamed", Elements: storedForm().Elements})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", f.Title)
	assert.Equal(t, form.StatusDraft, f.Status)
	assert.Nil(t, f.PublishedAt)

	status := form.StatusPublished
	f, err = svc.UpdateForm(context.Background(), alice, "f-1", form.UpdateFormDTO{Title: "Renamed", Status: &status, PublishedAt: &fixedAt})
	require.NoError(t, err)
	assert.Equal(t, form.StatusPublished, f.Status)
	assert.Equal(t, fixedAt, *f.PublishedAt)
}

// --------------------- PublishForm ---------------------
func TestPublishForm_Success(t *testing.T) {
	svc, m := setupFormServiceMocks(t)

	m.form.EXPECT().GetFormByID("f-1").Return(storedForm(), nil)
	m.form.EXPECT().SaveForm(gomock.Any()).Return(nil)

	no := false
	f, err := svc.PublishForm(context.Background(), alice, "f-1", form.PublishSettings{AllowAnonymous: &no})
	require.NoError(t, err)
	assert.Equal(t, form.StatusPublished, f.Status)
	assert.Equal(t, fixedAt, *f.PublishedAt)
	assert.Equal(t, "https://forms.test/forms/f-1", f.ShareURL)
	assert.Contains(t, f.EmbedCode, "https://forms.test/forms/f-1?embed=true")
	assert.False(t, f.AllowAnonymous)
}

func TestPublishForm_EmptyForm(t *testing.T) {
	svc, m := setupFormServiceMocks(t)

	empty := storedForm()
	empty.Elements = nil
	m.form.EXPECT().GetFormByID("f-1").Return(empty, nil)

	_, err := svc.PublishForm(context.Background(), alice, "f-1", form.PublishSettings{})
	assert.ErrorIs(t, err, form.ErrEmptyForm)
}

// --------------------- UnpublishForm ---------------------
func TestUnpublishForm(t *testing.T) {
	svc, m := setupFormServiceMocks(t)

	live := publishedForm()
	live.ShareURL = "https://forms.test/forms/f-1"
	m.form.EXPECT().GetFormByID("f-1").Return(live, nil)
	m.form.EXPECT().SaveForm(gomock.Any()).Return(nil)

	f, err := svc.UnpublishForm(context.Background(), alice, "f-1")
	require.NoError(t, err)
	assert.Equal(t, form.StatusUnpublished, f.Status)
	assert.Equal(t, live.ShareURL, f.ShareURL)

	m.form.EXPECT().GetFormByID("f-1").Return(storedForm(), nil)
	_, err = svc.UnpublishForm(context.Background(), alice, "f-1")
	assert.ErrorIs(t, err, form.ErrInvalidTransition)
}

// --------------------- GetPublishedForm ---------------------
func TestGetPublishedForm(t *testing.T) {
	svc, m := setupFormServiceMocks(t)

	m.form.EXPECT().GetFormByID("f-1").Return(storedForm(), nil)
	_, err := svc.GetPublishedForm(context.Background(), "f-1")
	assert.ErrorIs(t, err, ErrFormNotPublished)

	m.form.EXPECT().GetFormByID("f-1").Return(publishedForm(), nil)
	f, err := svc.GetPublishedForm(context.Background(), "f-1")
	require.NoError(t, err)
	assert.Equal(t, "Signup", f.Title)
}

// --------------------- DeleteForm ---------------------
func TestDeleteForm_RemovesDependents(t *testing.T) {
	svc, m := setupFormServiceMocks(t)

	m.form.EXPECT().GetFormByID("f-1").Return(storedForm(), nil)
	gomock.InOrder(
		m.submission.EXPECT().DeleteSubmissionsByForm("f-1").Return(nil),
		m.integration.EXPECT().DeleteIntegrationsByForm("f-1").Return(nil),
		m.form.EXPECT().DeleteForm("f-1").Return(nil),
	)

	assert.NoError(t, svc.DeleteForm(context.Background(), alice, "f-1"))
}

func TestDeleteForm_StopsOnError(t *testing.T) {
	svc, m := setupFormServiceMocks(t)

	m.form.EXPECT().GetFormByID("f-1").Return(storedForm(), nil)
	m.submission.EXPECT().DeleteSubmissionsByForm("f-1").Return(errors.New("db down"))

	assert.EqualError(t, svc.DeleteForm(context.Background(), alice, "f-1"), "db down")
}

// --------------------- RecordSubmission ---------------------
func TestRecordSubmission_Success(t *testing.T) {
	svc, m := setupFormServiceMocks(t)
	n := &recordingNotifier{}
	svc.Notifier = n

	m.form.EXPECT().GetFormByID("f-1").Return(publishedForm(), nil)
	m.submission.EXPECT().CreateSubmission(gomock.Any()).DoAndReturn(func(s *form.Submission) error {
		s.ID = 9
		return nil
	})

	values := form.Values{"name": form.String("Ann"), "news": form.Bool(true), "ghost": form.String("x")}
	sub, err := svc.RecordSubmission(context.Background(), nil, "f-1", values, "")
	require.NoError(t, err)
	assert.Equal(t, uint(9), sub.ID)
	assert.Equal(t, fixedAt, sub.SubmittedAt)
	assert.Nil(t, sub.SubmittedBy)
	assert.Equal(t, form.Values{"name": form.String("Ann"), "news": form.Bool(true)}, sub.Data.Data())
	assert.Len(t, n.calls, 1)
}

func TestRecordSubmission_ValidationErrors(t *testing.T) {
	svc, m := setupFormServiceMocks(t)

	m.form.EXPECT().GetFormByID("f-1").Return(publishedForm(), nil)

	_, err := svc.RecordSubmission(context.Background(), nil, "f-1", form.Values{"name": form.String("far too long a name")}, "")
	var verr *form.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{"name": "Name must be no more than 10 characters"}, verr.Fields)
}

func TestRecordSubmission_AccessRules(t *testing.T) {
	svc, m := setupFormServiceMocks(t)

	private := publishedForm()
	private.AllowAnonymous = false
	private.CollectEmails = true
	m.form.EXPECT().GetFormByID("f-1").Return(private, nil).Times(3)

	values := form.Values{"name": form.String("Ann")}
	_, err := svc.RecordSubmission(context.Background(), nil, "f-1", values, "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	anonymousEmail := session.Principal{SessionID: "s", UserID: 5}
	_, err = svc.RecordSubmission(context.Background(), &anonymousEmail, "f-1", values, "")
	assert.ErrorIs(t, err, ErrEmailRequired)

	m.submission.EXPECT().CreateSubmission(gomock.Any()).Return(nil)
	sub, err := svc.RecordSubmission(context.Background(), &mallory, "f-1", values, "")
	require.NoError(t, err)
	assert.Equal(t, mallory.Email, sub.RespondentEmail)
	require.NotNil(t, sub.SubmittedBy)
	assert.Equal(t, mallory.UserID, *sub.SubmittedBy)
}

func TestRecordSubmission_NotPublished(t *testing.T) {
	svc, m := setupFormServiceMocks(t)

	m.form.EXPECT().GetFormByID("f-1").Return(storedForm(), nil)
	_, err := svc.RecordSubmission(context.Background(), nil, "f-1", form.Values{}, "")
	assert.ErrorIs(t, err, ErrFormNotPublished)
}
