package results

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ethereum-optimism/infra/harness-report/types"
)

// yamlDocument is the YAML rendition of the results record:
//
//	meta:
//	  - time: 125000
//	overview:
//	  - {component: lexer, passed: 2, total: 3}
//	test:
//	  - {component: lexer, name: caseA, actual: "0", expected: "0"}
type yamlDocument struct {
	Meta     []map[string]string `yaml:"meta"`
	Overview []map[string]string `yaml:"overview"`
	Test     []map[string]string `yaml:"test"`
}

func decodeYAML(r io.Reader) (recordSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return recordSet{}, &types.IOError{Op: "read", Path: "results", Err: err}
	}
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return recordSet{}, &types.MalformedInputError{Reason: "invalid YAML document", Err: err}
	}
	return recordSet{
		meta:     fromYAMLRecords(kindMeta, doc.Meta),
		overview: fromYAMLRecords(kindOverview, doc.Overview),
		test:     fromYAMLRecords(kindTest, doc.Test),
	}, nil
}

func fromYAMLRecords(kind recordKind, in []map[string]string) []record {
	out := make([]record, 0, len(in))
	for i, attrs := range in {
		if attrs == nil {
			attrs = map[string]string{}
		}
		out = append(out, record{kind: kind, index: i + 1, attrs: attrs})
	}
	return out
}
