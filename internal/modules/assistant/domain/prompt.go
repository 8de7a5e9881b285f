package domain

import (
	"encoding/json"
	"fmt"
	"time"

	sessiondomain "libtrack/internal/modules/session/domain"
)

const systemInstructionTemplate = `You are a helpful and friendly AI assistant for the Library Time Tracker application. Your role is to answer questions based on the provided library session data. The data is given in a JSON object.

- ` + "`activeSessions`" + `: A list of students currently signed into the library. Each object includes ` + "`studentName`, `level`, and `timeIn`" + `.
- ` + "`completedSessions`" + `: A list of students who have already signed out. Each object includes ` + "`studentName`, `level`, `timeIn`, `timeOut`, and `duration`" + ` in hours, minutes, and seconds.

When answering, be concise and friendly. Format your answers clearly. If a question cannot be answered with the given data, say so politely. Do not make up information. Analyze the data to answer questions about student counts, session durations, who is currently present, who has visited, total times, average times, etc.

The current date and time is: %s. Use this for any time-related queries.`

// SystemInstruction describes the data schema to the model and anchors
// it to the current wall clock.
func SystemInstruction(now time.Time) string {
	return fmt.Sprintf(systemInstructionTemplate, now.Format("Mon Jan 2 2006 15:04:05 MST"))
}

// Snapshot is the JSON payload sent alongside every question.
type Snapshot struct {
	ActiveSessions    []sessiondomain.ActiveSession    `json:"activeSessions"`
	CompletedSessions []sessiondomain.CompletedSession `json:"completedSessions"`
}

// BuildPrompt wraps the data snapshot and the trimmed question into the
// single text payload the collaborator expects.
func BuildPrompt(snapshot Snapshot, question string) (string, error) {
	if snapshot.ActiveSessions == nil {
		snapshot.ActiveSessions = []sessiondomain.ActiveSession{}
	}
	if snapshot.CompletedSessions == nil {
		snapshot.CompletedSessions = []sessiondomain.CompletedSession{}
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("marshal session snapshot: %w", err)
	}
	return fmt.Sprintf("Based on the following data, please answer my question.\n\nDATA:\n%s\n\nQUESTION:\n%s", data, question), nil
}
