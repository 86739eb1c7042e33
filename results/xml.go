package results

import (
	"encoding/xml"
	"io"

	"github.com/ethereum-optimism/infra/harness-report/types"
)

// xmlDocument mirrors the harness report.xml: a root element of any name with
// meta, overview and test children.
type xmlDocument struct {
	XMLName  xml.Name
	Meta     []xmlRecord `xml:"meta"`
	Overview []xmlRecord `xml:"overview"`
	Test     []xmlRecord `xml:"test"`
}

type xmlRecord struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

func decodeXML(r io.Reader) (recordSet, error) {
	var doc xmlDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return recordSet{}, &types.MalformedInputError{Reason: "invalid XML document", Err: err}
	}
	return recordSet{
		meta:     fromXMLRecords(kindMeta, doc.Meta),
		overview: fromXMLRecords(kindOverview, doc.Overview),
		test:     fromXMLRecords(kindTest, doc.Test),
	}, nil
}

func fromXMLRecords(kind recordKind, in []xmlRecord) []record {
	out := make([]record, 0, len(in))
	for i, rec := range in {
		attrs := make(map[string]string, len(rec.Attrs))
		for _, a := range rec.Attrs {
			attrs[a.Name.Local] = a.Value
		}
		out = append(out, record{kind: kind, index: i + 1, attrs: attrs})
	}
	return out
}
