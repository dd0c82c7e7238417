package validator

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleForm struct {
	Name   string   `form:"name" validate:"required,max=5"`
	Born   string   `form:"born" validate:"omitempty,datetime=2006-01-02"`
	Ref    string   `form:"ref" validate:"required,uuid"`
	Status string   `form:"status" validate:"oneof=A B"`
	Tags   []string `form:"tags" validate:"dive,uuid"`
	Secret string   `form:"-"`
}

func TestAddErrorKeepsFirst(t *testing.T) {
	v := New()
	assert.True(t, v.Valid())

	v.AddError("title", "first")
	v.AddError("title", "second")
	v.AddError("isbn", "third")

	assert.False(t, v.Valid())
	assert.Equal(t, "first", v.For("title"))
	assert.Equal(t, "third", v.For("isbn"))
	assert.Equal(t, "", v.For("summary"))
	assert.Len(t, v.Errors, 2)
}

func TestCheck(t *testing.T) {
	v := New()
	v.Check(true, "a", "never recorded")
	v.Check(false, "b", "recorded")

	want := []FieldError{{Msg: "recorded", Param: "b"}}
	if diff := cmp.Diff(want, v.Errors); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		v := New()
		err := v.CheckStruct(&sampleForm{
			Name:   "Ada",
			Born:   "1815-12-10",
			Ref:    "1b4e28ba-2fa1-11d2-883f-0016d3cca427",
			Status: "B",
			Tags:   []string{},
		})
		require.NoError(t, err)
		assert.True(t, v.Valid())
	})

	t.Run("every rule fails in field order", func(t *testing.T) {
		v := New()
		err := v.CheckStruct(&sampleForm{
			Born:   "2020-13-01",
			Ref:    "x",
			Status: "C",
			Tags:   []string{"bad"},
		})
		require.NoError(t, err)

		want := []FieldError{
			{Msg: "Name must be specified.", Param: "name", Value: ""},
			{Msg: "Born must be a valid date.", Param: "born", Value: "2020-13-01"},
			{Msg: "Ref must reference an existing record.", Param: "ref", Value: "x"},
			{Msg: "Status must be one of: A, B.", Param: "status", Value: "C"},
			{Msg: "Tags must reference an existing record.", Param: "tags", Value: "bad"},
		}
		if diff := cmp.Diff(want, v.Errors); diff != "" {
			t.Errorf("errors mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("max length", func(t *testing.T) {
		v := New()
		err := v.CheckStruct(&sampleForm{
			Name:   "abcdefg",
			Ref:    "1b4e28ba-2fa1-11d2-883f-0016d3cca427",
			Status: "A",
		})
		require.NoError(t, err)
		assert.Equal(t, "Name must not exceed 5 characters.", v.For("name"))
	})

	t.Run("non-struct", func(t *testing.T) {
		v := New()
		assert.Error(t, v.CheckStruct("not a struct"))
	})
}

func TestCheckFields(t *testing.T) {
	values := url.Values{
		"name":  {"Ada"},
		"evil":  {"1"},
		"admin": {"true"},
	}

	v := New()
	v.CheckFields(values, "name", "born")

	want := []FieldError{
		{Msg: `Unexpected field "admin".`, Param: "admin"},
		{Msg: `Unexpected field "evil".`, Param: "evil"},
	}
	if diff := cmp.Diff(want, v.Errors); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Date of birth", label("date_of_birth"))
	assert.Equal(t, "Isbn", label("isbn"))
	assert.Equal(t, "", label(""))
}

