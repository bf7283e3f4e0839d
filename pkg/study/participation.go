package study

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// completion markers are expected to survive about a year client side
	COMPLETION_MARKER_COOKIE_PREFIX = "studyCompleted_"
	COMPLETION_MARKER_MAX_AGE       = 365 * 24 * 60 * 60 // seconds
)

func CompletionMarkerCookieName(studyID string) string {
	return COMPLETION_MARKER_COOKIE_PREFIX + studyID
}

// HasParticipated checks the two duplicate signals: the client held
// completion marker and the stored response record. Either one counts as
// prior participation. The marker tolerates the record check failing on a
// different device, the record tolerates cleared cookies; neither is a
// security control.
func HasParticipated(studyID primitive.ObjectID, visitorID string, completionMarker string) (bool, error) {
	if completionMarker != "" {
		return true, nil
	}

	return studyDBService.HasResponseForVisitor(studyID, visitorID)
}
