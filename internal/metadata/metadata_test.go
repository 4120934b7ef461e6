package metadata

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestXMLWellFormed(t *testing.T) {
	dec := xml.NewDecoder(strings.NewReader(XML))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("meta-data is not well-formed XML: %v", err)
		}
	}
}

func TestXMLDeclaresContractSurface(t *testing.T) {
	for _, want := range []string{
		`name="binary"`, `name="config"`, `name="agent_config"`,
		`name="user"`, `name="pid"`, `name="additional_parameters"`,
		`name="start"`, `name="stop"`, `name="monitor"`, `name="validate-all"`,
	} {
		if !strings.Contains(XML, want) {
			t.Fatalf("meta-data missing %s", want)
		}
	}
}
