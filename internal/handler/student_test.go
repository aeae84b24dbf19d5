package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/recordhub/internal/model"
	"github.com/iliyamo/recordhub/internal/repository"
)

type fakeStudentStore struct {
	byID   map[uint64]*model.Student
	nextID uint64
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{byID: map[uint64]*model.Student{}, nextID: 1}
}

func (s *fakeStudentStore) Create(_ context.Context, st *model.Student) error {
	for _, other := range s.byID {
		if other.Email == st.Email {
			return repository.ErrDuplicate
		}
	}
	st.ID = s.nextID
	s.nextID++
	s.byID[st.ID] = st
	return nil
}

func (s *fakeStudentStore) GetByID(_ context.Context, id uint64) (*model.Student, error) {
	st, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return st, nil
}

func (s *fakeStudentStore) ListByOwner(_ context.Context, ownerID uint64, _, _ int) ([]*model.Student, error) {
	var out []*model.Student
	for _, st := range s.byID {
		if st.UserID == ownerID {
			out = append(out, st)
		}
	}
	return out, nil
}

func (s *fakeStudentStore) Update(_ context.Context, st *model.Student, p model.StudentPatch) error {
	if p.Name != nil {
		st.Name = *p.Name
	}
	if p.Age != nil {
		st.Age = *p.Age
	}
	if p.Email != nil {
		st.Email = *p.Email
	}
	if p.Grades != nil {
		encoded, err := model.EncodeGrades(*p.Grades)
		if err != nil {
			return err
		}
		st.Grades = encoded
	}
	return nil
}

func (s *fakeStudentStore) Delete(_ context.Context, id uint64) error {
	if _, ok := s.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

// Grades go in as a JSON list, sit in a string column, and must come back
// with order and duplicates intact.
func TestStudentGradesRoundTrip(t *testing.T) {
	e := echo.New()
	h := NewStudentHandler(newFakeStudentStore())
	owner := &model.User{ID: 1}

	req := httptest.NewRequest(http.MethodPost, "/v1/students", strings.NewReader(
		`{"name":"Jo","age":20,"email":"jo@example.com","grades":["B","A","A","C+"]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := ctxFor(e, owner, req, "")
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var got studentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []string{"B", "A", "A", "C+"}, got.Grades)

	req = httptest.NewRequest(http.MethodGet, "/v1/students/1", nil)
	c, rec = ctxFor(e, owner, req, "1")
	require.NoError(t, h.Get(c))
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []string{"B", "A", "A", "C+"}, got.Grades)
}

func TestStudentCreateDuplicateEmail(t *testing.T) {
	e := echo.New()
	h := NewStudentHandler(newFakeStudentStore())
	owner := &model.User{ID: 1}

	body := `{"name":"Jo","age":20,"email":"jo@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/students", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := ctxFor(e, owner, req, "")
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/v1/students", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec = ctxFor(e, owner, req, "")
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestStudentUpdateGrades(t *testing.T) {
	e := echo.New()
	store := newFakeStudentStore()
	h := NewStudentHandler(store)
	owner := &model.User{ID: 1}

	grades, err := model.EncodeGrades([]string{"A"})
	require.NoError(t, err)
	require.NoError(t, store.Create(context.Background(), &model.Student{
		UserID: owner.ID, Name: "Jo", Age: 20, Email: "jo@example.com", Grades: grades,
	}))

	req := httptest.NewRequest(http.MethodPut, "/v1/students/1", strings.NewReader(`{"grades":["A","F"]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := ctxFor(e, owner, req, "1")
	require.NoError(t, h.Update(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got studentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []string{"A", "F"}, got.Grades)
	assert.Equal(t, "Jo", got.Name, "untouched fields survive a grades-only update")
}

func TestStudentRejectsNonPositiveAge(t *testing.T) {
	e := echo.New()
	h := NewStudentHandler(newFakeStudentStore())
	owner := &model.User{ID: 1}

	req := httptest.NewRequest(http.MethodPost, "/v1/students", strings.NewReader(
		`{"name":"Jo","age":0,"email":"jo@example.com"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := ctxFor(e, owner, req, "")
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
