package questions

// DefaultCatalog is the fixed, deterministic processing order for all
// source datasets. The order is load-bearing: when two datasets emit the
// same sourceId, the one earlier in this list wins (the source files are
// known to overlap partially).
var DefaultCatalog = []Dataset{
	{
		Name:       "boundaries.json",
		Shape:      ShapeNestedLegacy,
		Section:    SectionReadingWriting,
		SubSection: "Standard English Conventions",
		Topic:      "Boundaries",
		IDPrefix:   "BND",
		NestedPath: []string{"English Reading & Writing", "Standard English Conventions", "Boundaries"},
	},
	{
		Name:       "transitions.json",
		Shape:      ShapeNestedLegacy,
		Section:    SectionReadingWriting,
		SubSection: "Expression of Ideas",
		Topic:      "Transitions",
		IDPrefix:   "TRN",
		NestedPath: []string{"English Reading & Writing", "Expression of Ideas", "Transitions"},
	},
	{
		Name:       "inferences.json",
		Shape:      ShapeNestedLegacy,
		Section:    SectionReadingWriting,
		SubSection: "Information and Ideas",
		Topic:      "Inferences",
		IDPrefix:   "INF",
		NestedPath: []string{"English Reading & Writing", "Information and Ideas", "Inferences"},
	},
	{
		Name:       "form-structure-sense.json",
		Shape:      ShapeFlatCanonical,
		Section:    SectionReadingWriting,
		SubSection: "Standard English Conventions",
		Topic:      "Form, Structure, and Sense",
		IDPrefix:   "FSS",
	},
	{
		Name:       "central-ideas.json",
		Shape:      ShapeFlatCanonical,
		Section:    SectionReadingWriting,
		SubSection: "Information and Ideas",
		Topic:      "Central Ideas and Details",
		IDPrefix:   "CID",
	},
	{
		Name:       "words-in-context.json",
		Shape:      ShapeFlatCanonical,
		Section:    SectionReadingWriting,
		SubSection: "Craft and Structure",
		Topic:      "Words in Context",
		IDPrefix:   "WIC",
	},
	{
		Name:       "math/linear-equations-one-variable.json",
		Shape:      ShapeFlatCanonical,
		Section:    SectionMath,
		SubSection: "Algebra",
		Topic:      "Linear Equations",
		SubTopic:   "Linear Equations in One Variable",
		IDPrefix:   "LE1",
	},
	{
		Name:       "math/linear-equations-two-variables.json",
		Shape:      ShapeFlatCanonical,
		Section:    SectionMath,
		SubSection: "Algebra",
		Topic:      "Linear Equations",
		SubTopic:   "Linear Equations in Two Variables",
		IDPrefix:   "LE2",
	},
	{
		Name:       "math/systems-of-linear-equations.json",
		Shape:      ShapeFlatCanonical,
		Section:    SectionMath,
		SubSection: "Algebra",
		Topic:      "Systems of Linear Equations",
		IDPrefix:   "SLE",
	},
	{
		Name:       "math/nonlinear-functions.json",
		Shape:      ShapeFlatCanonical,
		Section:    SectionMath,
		SubSection: "Advanced Math",
		Topic:      "Nonlinear Functions",
		IDPrefix:   "NLF",
	},
	{
		Name:       "math/percentages.json",
		Shape:      ShapeFlatCanonical,
		Section:    SectionMath,
		SubSection: "Problem-Solving and Data Analysis",
		Topic:      "Percentages",
		IDPrefix:   "PCT",
	},
	{
		Name:       "math/geometry-trigonometry.json",
		Shape:      ShapeFlatCanonical,
		Section:    SectionMath,
		SubSection: "Geometry and Trigonometry",
		Topic:      "Geometry and Trigonometry",
		IDPrefix:   "GEO",
	},
}
