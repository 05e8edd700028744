package routepath

import "testing"

func TestLevelPathsEscapeID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		got  string
		want string
	}{
		{got: Modal("42"), want: "/levels/42/modal"},
		{got: Close("42"), want: "/levels/42/close"},
		{got: Hint(" 42 "), want: "/levels/42/hint"},
		{got: Answer("a/b"), want: "/levels/a%2Fb/answer"},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Fatalf("path = %q, want %q", tc.got, tc.want)
		}
	}
}

func TestActionsPointAtLevelRoutes(t *testing.T) {
	t.Parallel()

	actions := Actions("7")
	if actions.CloseURL != "/levels/7/close" || actions.HintURL != "/levels/7/hint" || actions.SubmitURL != "/levels/7/answer" {
		t.Fatalf("actions = %+v", actions)
	}
}
