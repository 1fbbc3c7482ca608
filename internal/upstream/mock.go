package upstream

import (
	"context"
	"fmt"
)

// MockClient produces deterministic activities without any I/O.
type MockClient struct{}

var _ Client = (*MockClient)(nil)

// NewMockClient creates a MockClient.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// FetchActivity never fails and always returns a found activity.
func (m *MockClient) FetchActivity(_ context.Context, participants int) (*Activity, error) {
	act := mockActivity(participants)
	recordFetch(clientMock, act, nil)
	return act, nil
}

func mockActivity(participants int) *Activity {
	if participants <= 0 {
		participants = 1
	}

	noun := "people"
	if participants == 1 {
		noun = "person"
	}

	return &Activity{
		Activity:      fmt.Sprintf("Mock activity for %d %s", participants, noun),
		Type:          "Mock",
		Participants:  participants,
		Price:         0,
		Link:          "",
		Key:           "0",
		Accessibility: 0,
	}
}
