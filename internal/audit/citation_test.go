package audit

import (
	"reflect"
	"testing"
)

func TestCitationCheck_OrderPreserving(t *testing.T) {
	ref := loadTables(t)
	topics := []string{"pricing", "support"}

	result := CitationCheck(ref, "Acme Corp", topics)

	if len(result.Topics) != len(topics) {
		t.Fatalf("Topics: got %d entries, want %d", len(result.Topics), len(topics))
	}
	for i, topic := range topics {
		if result.Topics[i].Topic != topic {
			t.Errorf("Topics[%d]: got %q, want %q", i, result.Topics[i].Topic, topic)
		}
		if result.Topics[i].Action == "" {
			t.Errorf("Topics[%d]: empty action", i)
		}
	}
}

func TestCitationCheck_Counts(t *testing.T) {
	ref := loadTables(t)
	topics := []string{"AI SEO", "brand visibility", "MCP servers", "content strategy"}

	result := CitationCheck(ref, "Newtation", topics)

	cited := 0
	for _, tf := range result.Topics {
		if tf.Cited {
			cited++
			if tf.Action != ref.CitationActions.Cited {
				t.Errorf("cited topic %q has action %q", tf.Topic, tf.Action)
			}
		} else if tf.Action != ref.CitationActions.Uncited {
			t.Errorf("uncited topic %q has action %q", tf.Topic, tf.Action)
		}
	}
	if result.CitedCount != cited {
		t.Errorf("CitedCount = %d, want %d", result.CitedCount, cited)
	}
	if result.TopicCount != len(topics) {
		t.Errorf("TopicCount = %d, want %d", result.TopicCount, len(topics))
	}
	wantRate := cited * 100 / len(topics)
	if result.CitationRate != wantRate {
		t.Errorf("CitationRate = %d, want %d", result.CitationRate, wantRate)
	}
}

func TestCitationCheck_EmptyTopics(t *testing.T) {
	ref := loadTables(t)

	result := CitationCheck(ref, "Acme Corp", nil)

	if len(result.Topics) != 0 {
		t.Errorf("Topics: got %d entries, want 0", len(result.Topics))
	}
	if result.CitationRate != 0 {
		t.Errorf("CitationRate = %d, want 0", result.CitationRate)
	}
}

func TestCitationCheck_Deterministic(t *testing.T) {
	ref := loadTables(t)
	topics := []string{"pricing", "support"}

	a := CitationCheck(ref, "Acme Corp", topics)
	b := CitationCheck(ref, "Acme Corp", topics)

	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different results")
	}
}
