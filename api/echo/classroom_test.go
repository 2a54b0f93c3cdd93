package echoapi

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/classflow/gradego/core"
	"github.com/classflow/gradego/core/student"
)

func TestOrderRoster(t *testing.T) {
	roster := func() []student.Student {
		return []student.Student{
			{FirstName: "Arnold", LastName: "Perlstein", LRN: "3"},
			{FirstName: "Dorothy", LastName: "Ann", LRN: "1"},
			{FirstName: "Carlos", LastName: "Ramon", LRN: "2"},
		}
	}
	firstNames := func(students []student.Student) []string {
		names := make([]string, 0, len(students))
		for _, st := range students {
			names = append(names, st.FirstName)
		}
		return names
	}

	t.Run("no ordering keeps input order", func(t *testing.T) {
		students := roster()
		orderRoster(students, Ordering{})
		assert.Equal(t, []string{"Arnold", "Dorothy", "Carlos"}, firstNames(students))
	})

	t.Run("by first name", func(t *testing.T) {
		students := roster()
		orderRoster(students, Ordering{Orderings: []core.DBOrdering{{Field: "first_name", Ascending: true}}})
		assert.Equal(t, []string{"Arnold", "Carlos", "Dorothy"}, firstNames(students))
	})

	t.Run("by descending lrn", func(t *testing.T) {
		students := roster()
		orderRoster(students, Ordering{Orderings: []core.DBOrdering{{Field: "lrn"}}})
		assert.Equal(t, []string{"Arnold", "Carlos", "Dorothy"}, firstNames(students))
	})

	t.Run("unknown field is a no-op", func(t *testing.T) {
		students := roster()
		orderRoster(students, Ordering{Orderings: []core.DBOrdering{{Field: "lol", Ascending: true}}})
		assert.Equal(t, []string{"Arnold", "Dorothy", "Carlos"}, firstNames(students))
	})
}
