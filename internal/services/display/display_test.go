package display

import (
	"bytes"
	"testing"
)

func TestConsole_Show(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleWriter(&buf).Show("Access Denied", "Not Allowed!")

	expected := "[Access Denied   ]\n[Not Allowed!    ]\n"
	if buf.String() != expected {
		t.Errorf("Show output = %q, expected %q", buf.String(), expected)
	}
}

func TestConsole_TruncatesToPanelWidth(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleWriter(&buf).Show("This line is far too long for the panel", "")

	expected := "[This line is far]\n[                ]\n"
	if buf.String() != expected {
		t.Errorf("Show output = %q, expected %q", buf.String(), expected)
	}
}
