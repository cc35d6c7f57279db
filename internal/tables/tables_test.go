package tables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-scorer/internal/types"
)

func TestLoad_EmbeddedTables(t *testing.T) {
	tbl, err := Load()
	require.NoError(t, err)

	tiers := tbl.VerbTiers()
	require.Len(t, tiers, 5)
	for i, tier := range tiers {
		assert.Equal(t, i, tier.Tier)
		assert.Equal(t, float64(i), tier.Points)
		assert.NotEmpty(t, tier.Verbs)
	}

	assert.NotEmpty(t, tbl.Synonyms())
	assert.Contains(t, tbl.VaguePhrases(), "responsible for")
	assert.Contains(t, tbl.RoleKeys(), GeneralRole)

	for _, level := range types.AllLevels {
		lt := tbl.Thresholds(level)
		require.Len(t, lt.Quantification, 4, "level %s", level)
		for i := 1; i < len(lt.Quantification); i++ {
			assert.Greater(t, lt.Quantification[i-1].MinRate, lt.Quantification[i].MinRate)
		}
	}
}

func TestDefault_IsMemoized(t *testing.T) {
	assert.Same(t, Default(), Default())
}

func TestThresholds_LevelValues(t *testing.T) {
	tbl := Default()

	tests := []struct {
		level    types.ExperienceLevel
		topRate  float64
		yearsMin float64
		yearsMax float64
	}{
		{types.LevelBeginner, 0.40, 0, 2},
		{types.LevelIntermediary, 0.50, 2, 6},
		{types.LevelSenior, 0.60, 5, 40},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			lt := tbl.Thresholds(tt.level)
			assert.Equal(t, tt.topRate, lt.Quantification[0].MinRate)
			assert.Equal(t, 10.0, lt.Quantification[0].Points)
			assert.Equal(t, tt.yearsMin, lt.Years.Min)
			assert.Equal(t, tt.yearsMax, lt.Years.Max)
		})
	}
}

func TestAccessors_ReturnCopies(t *testing.T) {
	tbl, err := Load()
	require.NoError(t, err)

	phrases := tbl.VaguePhrases()
	phrases[0] = "mutated"
	assert.NotEqual(t, "mutated", tbl.VaguePhrases()[0])

	syn := tbl.Synonyms()
	syn["python"] = nil
	assert.NotEmpty(t, tbl.Synonyms()["python"])

	role, ok := tbl.Role("software_engineer")
	require.True(t, ok)
	role.Keywords[0] = "mutated"
	role.Weights["polish"] = 99
	again, _ := tbl.Role("software_engineer")
	assert.NotEqual(t, "mutated", again.Keywords[0])
	assert.NotEqual(t, 99, again.Weights["polish"])
}

func TestResolveRole(t *testing.T) {
	tbl := Default()

	tests := []struct {
		name         string
		key          string
		wantKey      string
		wantFallback bool
	}{
		{"exact key", "software_engineer", "software_engineer", false},
		{"display form", "Software Engineer", "software_engineer", false},
		{"hyphenated", "data-scientist", "data_scientist", false},
		{"unknown role", "astronaut", GeneralRole, true},
		{"empty role", "", GeneralRole, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, fallback := tbl.ResolveRole(tt.key)
			assert.Equal(t, tt.wantKey, role.Key)
			assert.Equal(t, tt.wantFallback, fallback)
		})
	}
}

func TestNew_Validation(t *testing.T) {
	valid := func() Data {
		return Data{
			VerbTiers: []VerbTierDef{{Tier: 0, Points: 0, Verbs: []string{"worked on"}}},
			Roles:     map[string]Role{"general": {Name: "General"}},
			Levels: map[types.ExperienceLevel]LevelThresholds{
				types.LevelBeginner:     {Years: Range{Min: 0, Max: 2}},
				types.LevelIntermediary: {Years: Range{Min: 2, Max: 6}},
				types.LevelSenior:       {Years: Range{Min: 5, Max: 40}},
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(d *Data)
		wantErr string
	}{
		{"valid", func(d *Data) {}, ""},
		{"tier out of range", func(d *Data) { d.VerbTiers[0].Tier = 7 }, "out of range"},
		{"duplicate tier", func(d *Data) { d.VerbTiers = append(d.VerbTiers, d.VerbTiers[0]) }, "duplicate tier"},
		{"missing general role", func(d *Data) { d.Roles = map[string]Role{"sales": {}} }, "missing required role"},
		{"missing level", func(d *Data) { delete(d.Levels, types.LevelSenior) }, "missing thresholds"},
		{"inverted range", func(d *Data) {
			d.Levels[types.LevelBeginner] = LevelThresholds{Years: Range{Min: 3, Max: 1}}
		}, "inverted range"},
		{"negative weight", func(d *Data) {
			d.Roles["general"] = Role{Weights: map[string]int{"polish": -1}}
		}, "negative weight"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid()
			tt.mutate(&d)
			_, err := New(d)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var tableErr *TableError
			assert.ErrorAs(t, err, &tableErr)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNew_NormalizesTerms(t *testing.T) {
	tbl, err := New(Data{
		VerbTiers:    []VerbTierDef{{Tier: 3, Verbs: []string{"  LED ", "led", "Drove"}}},
		Synonyms:     map[string][]string{"  Kubernetes ": {"K8S", "k8s"}},
		VaguePhrases: []string{"Responsible   For"},
		Roles:        map[string]Role{"General": {}},
		Levels: map[types.ExperienceLevel]LevelThresholds{
			types.LevelBeginner:     {},
			types.LevelIntermediary: {},
			types.LevelSenior:       {},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"led", "drove"}, tbl.VerbTiers()[0].Verbs)
	assert.Equal(t, map[string][]string{"kubernetes": {"k8s"}}, tbl.Synonyms())
	assert.Equal(t, []string{"responsible for"}, tbl.VaguePhrases())
	assert.Equal(t, []string{"general"}, tbl.RoleKeys())
}

func TestRange(t *testing.T) {
	r := Range{Min: 2, Max: 6}
	assert.True(t, r.Contains(2))
	assert.True(t, r.Contains(6))
	assert.False(t, r.Contains(6.5))
	assert.Equal(t, 0.0, r.Distance(4))
	assert.Equal(t, 1.5, r.Distance(0.5))
	assert.Equal(t, 3.0, r.Distance(9))
}
