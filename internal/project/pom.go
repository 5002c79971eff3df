package project

import (
	"encoding/xml"
	"io"
	"strings"
)

// pomFile is the subset of a Maven project descriptor the generator reads
type pomFile struct {
	XMLName    xml.Name      `xml:"project"`
	GroupID    string        `xml:"groupId"`
	ArtifactID string        `xml:"artifactId"`
	Version    string        `xml:"version"`
	Parent     *pomParent    `xml:"parent"`
	Properties pomProperties `xml:"properties"`
	Build      struct {
		Directory string `xml:"directory"`
	} `xml:"build"`
	Dependencies         []pomDependency `xml:"dependencies>dependency"`
	DependencyManagement struct {
		Dependencies []pomDependency `xml:"dependencies>dependency"`
	} `xml:"dependencyManagement"`
}

type pomParent struct {
	GroupID      string  `xml:"groupId"`
	ArtifactID   string  `xml:"artifactId"`
	Version      string  `xml:"version"`
	RelativePath *string `xml:"relativePath"`
}

type pomDependency struct {
	GroupID    string  `xml:"groupId"`
	ArtifactID string  `xml:"artifactId"`
	Version    string  `xml:"version"`
	Type       string  `xml:"type"`
	Classifier *string `xml:"classifier"`
	Scope      string  `xml:"scope"`
}

// managementKey identifies a managed dependency
func (d pomDependency) managementKey() string {
	key := d.GroupID + ":" + d.ArtifactID + ":" + d.typeOrDefault()
	if d.Classifier != nil && *d.Classifier != "" {
		key += ":" + *d.Classifier
	}
	return key
}

func (d pomDependency) typeOrDefault() string {
	if d.Type == "" {
		return defaultType
	}
	return d.Type
}

// pomProperties collects the free-form children of <properties>
type pomProperties map[string]string

// UnmarshalXML reads every child element as a name/value pair
func (p *pomProperties) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	if *p == nil {
		*p = make(pomProperties)
	}

	for {
		token, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			var value string
			if err := d.DecodeElement(&value, &t); err != nil {
				return err
			}
			(*p)[t.Name.Local] = strings.TrimSpace(value)
		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		}
	}
}
