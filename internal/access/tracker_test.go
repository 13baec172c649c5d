package access

import "testing"

func TestTracker_ConsecutiveDenials(t *testing.T) {
	tracker := NewTracker(3)

	if fired := tracker.Record(Denied); fired {
		t.Error("Alert should not fire after 1 denial")
	}
	if tracker.Count() != 1 {
		t.Errorf("Count after 1 denial = %d, expected 1", tracker.Count())
	}

	if fired := tracker.Record(Denied); fired {
		t.Error("Alert should not fire after 2 denials")
	}
	if tracker.Count() != 2 {
		t.Errorf("Count after 2 denials = %d, expected 2", tracker.Count())
	}

	if fired := tracker.Record(Denied); !fired {
		t.Error("Alert should fire on the 3rd consecutive denial")
	}
	if tracker.Count() != 0 {
		t.Errorf("Count after alert = %d, expected 0", tracker.Count())
	}
}

func TestTracker_GrantedResetsAnyCount(t *testing.T) {
	for _, prior := range []int{0, 1, 2} {
		tracker := NewTracker(3)
		for i := 0; i < prior; i++ {
			tracker.Record(Denied)
		}

		if fired := tracker.Record(Granted); fired {
			t.Errorf("Alert fired on Granted with prior count %d", prior)
		}
		if tracker.Count() != 0 {
			t.Errorf("Count after Granted with prior %d = %d, expected 0", prior, tracker.Count())
		}
	}
}

func TestTracker_AlertFiresOncePerThreshold(t *testing.T) {
	tracker := NewTracker(3)

	fired := 0
	for i := 0; i < 9; i++ {
		if tracker.Record(Denied) {
			fired++
		}
	}

	if fired != 3 {
		t.Errorf("Alerts over 9 denials = %d, expected 3", fired)
	}
	if tracker.Count() != 0 {
		t.Errorf("Count after 9 denials = %d, expected 0", tracker.Count())
	}
}
