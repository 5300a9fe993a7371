// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/xml"
	"fmt"

	"github.com/fivetwentythree/explore/internal/graph"
)

// graphmlNS is the GraphML schema namespace.
const graphmlNS = "http://graphml.graphdrawing.org/xmlns"

// Attribute key ids referenced by node data elements.
const (
	keyLabel = "d0"
	keyDepth = "d1"
)

type graphmlDoc struct {
	XMLName xml.Name     `xml:"graphml"`
	XMLNS   string       `xml:"xmlns,attr"`
	Keys    []graphmlKey `xml:"key"`
	Graph   graphmlGraph `xml:"graph"`
}

type graphmlKey struct {
	ID       string `xml:"id,attr"`
	For      string `xml:"for,attr"`
	AttrName string `xml:"attr.name,attr"`
	AttrType string `xml:"attr.type,attr"`
}

type graphmlGraph struct {
	ID          string        `xml:"id,attr"`
	EdgeDefault string        `xml:"edgedefault,attr"`
	Nodes       []graphmlNode `xml:"node"`
	Edges       []graphmlEdge `xml:"edge"`
}

type graphmlNode struct {
	ID   string        `xml:"id,attr"`
	Data []graphmlData `xml:"data"`
}

type graphmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

type graphmlEdge struct {
	ID     string `xml:"id,attr"`
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
}

// GraphML renders the snapshot as a GraphML document. Every node carries
// its label and depth as declared attributes; every parent→child
// relation becomes a directed edge. Nodes and edges appear in pre-order,
// so output is deterministic for a given snapshot.
func GraphML(snapshot []graph.Node) ([]byte, error) {
	doc := graphmlDoc{
		XMLNS: graphmlNS,
		Keys: []graphmlKey{
			{ID: keyLabel, For: "node", AttrName: "label", AttrType: "string"},
			{ID: keyDepth, For: "node", AttrName: "depth", AttrType: "int"},
		},
		Graph: graphmlGraph{
			ID:          "G",
			EdgeDefault: "directed",
		},
	}

	for _, n := range snapshot {
		doc.Graph.Nodes = append(doc.Graph.Nodes, graphmlNode{
			ID: nodeID(n.ID),
			Data: []graphmlData{
				{Key: keyLabel, Value: n.Label},
				{Key: keyDepth, Value: fmt.Sprintf("%d", n.Depth)},
			},
		})
		if n.Parent != 0 {
			doc.Graph.Edges = append(doc.Graph.Edges, graphmlEdge{
				ID:     fmt.Sprintf("e%d", len(doc.Graph.Edges)),
				Source: nodeID(n.Parent),
				Target: nodeID(n.ID),
			})
		}
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling graphml: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

func nodeID(id graph.NodeID) string {
	return fmt.Sprintf("n%d", id)
}
