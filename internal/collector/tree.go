package collector

import "github.com/unbound-force/spec-collector/internal/taxonomy"

// Default classification tree identity.
const (
	TreeTitle = "Structure"
	TreeCode  = "structure"
)

// BuildTrees turns the accumulated level values into one project
// attribute per level and the single classification tree spanning all
// levels. The tree is emitted even when no level has values.
func BuildTrees(levels *LevelValueSet) ([]taxonomy.ProjectAttribute, []taxonomy.Tree) {
	if levels == nil {
		levels = NewLevelValueSet(0)
	}

	attrs := make([]taxonomy.ProjectAttribute, 0, levels.Len())
	keys := make([]string, 0, levels.Len())

	for i := 0; i < levels.Len(); i++ {
		key := taxonomy.LevelKey(i)
		keys = append(keys, key)

		values := []taxonomy.AttributeValue{}
		for _, v := range levels.Values(i) {
			if v == "" {
				continue
			}
			values = append(values, taxonomy.AttributeValue{
				Code:  taxonomy.ValueCode(i, v),
				Title: v,
			})
		}

		attrs = append(attrs, taxonomy.ProjectAttribute{
			Title:  key,
			Code:   key,
			Values: values,
		})
	}

	trees := []taxonomy.Tree{{
		Title:      TreeTitle,
		Code:       TreeCode,
		Attributes: keys,
	}}
	return attrs, trees
}
