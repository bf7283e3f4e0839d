package study

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCompletionMarkerCookieName(t *testing.T) {
	id := primitive.NewObjectID().Hex()
	name := CompletionMarkerCookieName(id)
	if name != "studyCompleted_"+id {
		t.Errorf("unexpected cookie name: %s", name)
	}
}

func TestHasParticipatedMarkerShortCircuits(t *testing.T) {
	// marker present: must not need the DB at all
	participated, err := HasParticipated(primitive.NewObjectID(), "v1", "some-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !participated {
		t.Errorf("expected marker alone to count as participation")
	}
}
