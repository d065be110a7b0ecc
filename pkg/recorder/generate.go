package recorder

import (
	"encoding/json"
	"fmt"
	"go/format"
	"strconv"
	"strings"
	"unicode"

	"sigs.k8s.io/yaml"

	"github.com/petrijr/featuretour/pkg/api"
)

const (
	DefaultTourName = "MyTour"
	DefaultTourID   = "my-tour"

	// GeneratedPackage is the package clause of generated code.
	GeneratedPackage = "tours"
	importPath       = "github.com/petrijr/featuretour"
)

func defaultName(name string) string {
	if strings.TrimSpace(name) == "" {
		return DefaultTourName
	}
	return name
}

func defaultID(id string) string {
	if strings.TrimSpace(id) == "" {
		return DefaultTourID
	}
	return id
}

// SafeIdentifier keeps the letters and digits of s and makes the result an
// exported Go identifier. It returns "UnnamedTour" when nothing is left.
func SafeIdentifier(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	out := []rune(b.String())
	if len(out) == 0 {
		return "UnnamedTour"
	}
	if unicode.IsDigit(out[0]) {
		return "Tour" + string(out)
	}
	out[0] = unicode.ToUpper(out[0])
	return string(out)
}

// GenerateCode renders steps as a Go type implementing api.TourDefinition.
// Strings are emitted as Go literals, so any header or content text
// survives a round trip through the Go parser.
func GenerateCode(tourName, tourID string, steps []api.RecordedStep) (string, error) {
	tourName = defaultName(tourName)
	tourID = defaultID(tourID)
	typ := SafeIdentifier(tourName) + "Tour"

	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated by the tour recorder.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", GeneratedPackage)
	fmt.Fprintf(&b, "import %q\n\n", importPath)
	fmt.Fprintf(&b, "// %s was recorded with the tour recorder.\n", typ)
	fmt.Fprintf(&b, "type %s struct{}\n\n", typ)
	fmt.Fprintf(&b, "func (%s) TourID() string { return %s }\n", typ, strconv.Quote(tourID))
	fmt.Fprintf(&b, "func (%s) TourName() string { return %s }\n", typ, strconv.Quote(tourName))
	fmt.Fprintf(&b, "func (%s) Description() string { return %s }\n", typ, strconv.Quote("Recorded tour "+tourName))
	fmt.Fprintf(&b, "func (%s) DisplayOrder() int { return 1 }\n\n", typ)
	fmt.Fprintf(&b, "func (%s) CreateTour() (*featuretour.Tour, error) {\n", typ)
	fmt.Fprintf(&b, "\treturn featuretour.New(%s).\n", strconv.Quote(tourName))
	fmt.Fprintf(&b, "\t\tShowNextButtonDefault(true).\n")
	for _, s := range steps {
		placement := s.Placement
		if !placement.Valid() {
			return "", fmt.Errorf("step %q: %w", s.ElementID, api.ErrInvalidPlacement)
		}
		fmt.Fprintf(&b, "\t\tStep(%s, %s, %s, featuretour.WithPlacement(featuretour.Placement%s)).\n",
			strconv.Quote(s.ElementID), strconv.Quote(s.Header), strconv.Quote(s.Content), placement)
	}
	fmt.Fprintf(&b, "\t\tBuild()\n}\n")

	src, err := format.Source([]byte(b.String()))
	if err != nil {
		return "", fmt.Errorf("format generated code: %w", err)
	}
	return string(src), nil
}

// GenerateData renders steps as an indented JSON tour document.
func GenerateData(tourName, tourID string, steps []api.RecordedStep) (string, error) {
	doc := api.DocumentFromRecorded(defaultID(tourID), defaultName(tourName), steps)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode tour document: %w", err)
	}
	return string(data) + "\n", nil
}

// GenerateYAML renders steps as a YAML tour document.
func GenerateYAML(tourName, tourID string, steps []api.RecordedStep) (string, error) {
	doc := api.DocumentFromRecorded(defaultID(tourID), defaultName(tourName), steps)
	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode tour document: %w", err)
	}
	return string(data), nil
}

// ParseData reads a tour document in JSON or YAML (JSON is valid YAML).
func ParseData(data []byte) (api.TourDocument, error) {
	var doc api.TourDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return api.TourDocument{}, fmt.Errorf("decode tour document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return api.TourDocument{}, err
	}
	return doc, nil
}
