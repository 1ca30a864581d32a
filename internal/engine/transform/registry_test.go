package transform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/engine/matching"
	"go.trai.ch/weft/internal/engine/transform"
)

func TestRegistry_Add_Validation(t *testing.T) {
	r := transform.NewRegistry()

	err := r.Add(domain.Registration{
		To: attrs(map[string]domain.Value{"minified": domain.BoolValue(true)}),
	})
	assert.Error(t, err, "a registration needs an action identity")

	err = r.Add(domain.Registration{Action: "minify"})
	assert.Error(t, err, "a registration needs a non-empty 'to' pattern")

	require.NoError(t, r.Add(minifyFromJar))
	assert.Len(t, r.All(), 1)
}

func TestRegistry_CandidatesFor(t *testing.T) {
	schema := matching.NewSchema()
	schema.Register("packaging", domain.KindString)
	schema.Register("minified", domain.KindBool)
	m := matching.NewMatcher(schema)

	r := transform.NewRegistry()
	require.NoError(t, r.Add(minifyFromJar))
	require.NoError(t, r.Add(explode))

	// Only registrations whose "to" pattern closes the gap apply.
	cands := r.CandidatesFor(attrs(map[string]domain.Value{"minified": domain.BoolValue(true)}), m)
	require.Len(t, cands, 1)
	assert.Equal(t, "minify", cands[0].Action)

	// A "to" value conflicting with the target disqualifies the edge.
	cands = r.CandidatesFor(attrs(map[string]domain.Value{"minified": domain.BoolValue(false)}), m)
	assert.Empty(t, cands)

	// Unrelated targets match nothing.
	cands = r.CandidatesFor(attrs(map[string]domain.Value{"packaging": domain.StringValue("zip")}), m)
	assert.Empty(t, cands)
}

func TestRegistry_All_ReturnsCopy(t *testing.T) {
	r := transform.NewRegistry()
	require.NoError(t, r.Add(minifyFromJar))

	all := r.All()
	all[0].Action = "mutated"

	assert.Equal(t, "minify", r.All()[0].Action)
}
