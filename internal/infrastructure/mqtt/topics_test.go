package mqtt

import "testing"

func TestTopics(t *testing.T) {
	topics := Topics{}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"system status", topics.SystemStatus(), "voxgate/system/status"},
		{"switch event", topics.SwitchEvent("d1"), "voxgate/event/switch/d1"},
		{"group event", topics.GroupEvent("g-42"), "voxgate/event/group/g-42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("topic = %q, want %q", tt.got, tt.want)
			}
		})
	}
}
