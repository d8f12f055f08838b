package studio

import (
	"reflect"
	"testing"
)

func TestRefreshAssignments(t *testing.T) {
	t.Run("new speakers get the default voice", func(t *testing.T) {
		got := RefreshAssignments("Alice: hi\nBob: hey", nil, "Kore")
		want := map[string]string{"Alice": "Kore", "Bob": "Kore"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("existing assignments survive edits", func(t *testing.T) {
		existing := map[string]string{"Alice": "Puck"}
		got := RefreshAssignments("Alice: hi\nBob: hey", existing, "Kore")
		want := map[string]string{"Alice": "Puck", "Bob": "Kore"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("removed speakers are dropped", func(t *testing.T) {
		existing := map[string]string{"Alice": "Puck", "Bob": "Charon"}
		got := RefreshAssignments("Alice: still here", existing, "Kore")
		want := map[string]string{"Alice": "Puck"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("speaker without a body yet is still assigned", func(t *testing.T) {
		got := RefreshAssignments("Alice:", nil, "Kore")
		want := map[string]string{"Alice": "Kore"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})
}
