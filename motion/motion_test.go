package motion

import "testing"

func TestSetNotifiesOnlyOnChange(t *testing.T) {
	p := NewPreference(false)
	var got []bool
	p.Subscribe(func(on bool) { got = append(got, on) })

	p.Set(false)
	p.Set(true)
	p.Set(true)
	p.Toggle()

	if len(got) != 2 || got[0] != true || got[1] != false {
		t.Errorf("notifications = %v, want [true false]", got)
	}
	if p.Reduced() {
		t.Error("expected motion enabled after toggle")
	}
}

func TestUnsubscribe(t *testing.T) {
	p := NewPreference(false)
	calls := 0
	unsub := p.Subscribe(func(bool) { calls++ })
	p.Set(true)
	unsub()
	unsub()
	p.Set(false)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		fallback bool
		want     bool
	}{
		{"unset uses fallback", nil, true, true},
		{"reduce keyword", map[string]string{"DUSK_TEST_A": "reduce"}, false, true},
		{"bool true", map[string]string{"DUSK_TEST_A": "1"}, false, true},
		{"no-preference", map[string]string{"DUSK_TEST_A": "no-preference"}, true, false},
		{"first var wins", map[string]string{"DUSK_TEST_A": "off", "DUSK_TEST_B": "on"}, false, false},
		{"second var used", map[string]string{"DUSK_TEST_B": "on"}, false, true},
		{"garbage uses fallback", map[string]string{"DUSK_TEST_A": "sideways"}, true, true},
		{"garbage skipped for next var", map[string]string{"DUSK_TEST_A": "sideways", "DUSK_TEST_B": "reduce"}, false, true},
		{"padded bool", map[string]string{"DUSK_TEST_A": " true "}, false, true},
		{"padded keyword", map[string]string{"DUSK_TEST_A": "  Reduce\n"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if got := Detect([]string{"DUSK_TEST_A", "DUSK_TEST_B"}, tt.fallback); got != tt.want {
				t.Errorf("Detect = %v, want %v", got, tt.want)
			}
		})
	}
}
