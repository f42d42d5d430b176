package segment

import "testing"

func TestValidateContentVerbatim(t *testing.T) {
	transcript := "Today we will talk about cloud migration and the costs involved."
	if !ValidateContent("we will talk about cloud migration", transcript) {
		t.Error("expected verbatim extract to validate")
	}
}

func TestValidateContentEmpty(t *testing.T) {
	if ValidateContent("", "some transcript text") {
		t.Error("empty content must never validate")
	}
	if ValidateContent("   ", "some transcript text") {
		t.Error("whitespace-only content must never validate")
	}
}

func TestValidateContentHallucinated(t *testing.T) {
	transcript := "The meeting covered quarterly results and hiring plans."
	content := "Completely unrelated invented sentences about submarine engineering."
	if ValidateContent(content, transcript) {
		t.Error("expected hallucinated content to fail validation")
	}
}

func TestValidateContentThresholdBoundary(t *testing.T) {
	transcript := "alpha beta gamma delta epsilon zeta eta"

	// 7 of 10 distinct words match: ratio 0.7 is not strictly above the threshold
	atThreshold := "alpha beta gamma delta epsilon zeta eta foo bar baz"
	if ValidateContent(atThreshold, transcript) {
		t.Error("ratio exactly at threshold should not validate")
	}

	// 7 of 9 distinct words match: 0.78 > 0.7
	aboveThreshold := "alpha beta gamma delta epsilon zeta eta foo bar"
	if !ValidateContent(aboveThreshold, transcript) {
		t.Error("ratio above threshold should validate")
	}
}

func TestValidateContentCaseInsensitive(t *testing.T) {
	if !ValidateContent("HELLO WORLD", "hello world again") {
		t.Error("validation should ignore case")
	}
}
