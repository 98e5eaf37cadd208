package fcpxml

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Version is the FCPXML schema version the builder emits.
const Version = "1.10"

// Document is the serialized project tree: a format and asset resource
// section followed by a library holding one event with one asset clip and
// its beat markers. Documents are built once and serialized once; there
// is no mutation after construction.
type Document struct {
	XMLName   xml.Name  `xml:"fcpxml"`
	Version   string    `xml:"version,attr"`
	Resources Resources `xml:"resources"`
	Library   Library   `xml:"library"`
}

// Resources declares the identifiers the clip references.
type Resources struct {
	Format Format `xml:"format"`
	Asset  Asset  `xml:"asset"`
}

// Format describes the timeline's frame rate and presentation size.
type Format struct {
	ID            string `xml:"id,attr"`
	Name          string `xml:"name,attr"`
	FrameDuration string `xml:"frameDuration,attr"`
	Width         int    `xml:"width,attr"`
	Height        int    `xml:"height,attr"`
}

// Asset describes the source media: sample-accurate duration and audio
// metadata, plus a media-rep pointing at the original file location.
type Asset struct {
	ID            string   `xml:"id,attr"`
	Name          string   `xml:"name,attr"`
	Start         string   `xml:"start,attr"`
	Duration      string   `xml:"duration,attr"`
	HasAudio      string   `xml:"hasAudio,attr"`
	AudioSources  string   `xml:"audioSources,attr"`
	AudioChannels string   `xml:"audioChannels,attr"`
	AudioRate     string   `xml:"audioRate,attr"`
	MediaRep      MediaRep `xml:"media-rep"`
}

// MediaRep links the asset to its media by absolute file URI; the media
// itself is never copied or re-encoded.
type MediaRep struct {
	Kind string `xml:"kind,attr"`
	Src  string `xml:"src,attr"`
}

// Library holds the single event.
type Library struct {
	Event Event `xml:"event"`
}

// Event holds the single asset clip.
type Event struct {
	Name string    `xml:"name,attr"`
	Clip AssetClip `xml:"asset-clip"`
}

// AssetClip places the asset on the timeline at frame-accurate duration
// and carries the beat markers.
type AssetClip struct {
	Name      string   `xml:"name,attr"`
	Ref       string   `xml:"ref,attr"`
	Offset    string   `xml:"offset,attr"`
	Duration  string   `xml:"duration,attr"`
	Format    string   `xml:"format,attr"`
	AudioRole string   `xml:"audioRole,attr"`
	TCFormat  string   `xml:"tcFormat,attr"`
	Markers   []Marker `xml:"marker"`
}

// Marker is one beat: a one-frame annotation at the beat's start time.
type Marker struct {
	Start     string `xml:"start,attr"`
	Duration  string `xml:"duration,attr"`
	Value     string `xml:"value,attr"`
	Completed string `xml:"completed,attr"`
	Note      string `xml:"note,attr"`
}

// Validate checks referential integrity: every identifier the clip
// references must resolve to a declared resource.
func (d *Document) Validate() error {
	declared := map[string]struct{}{}
	if d.Resources.Format.ID != "" {
		declared[d.Resources.Format.ID] = struct{}{}
	}
	if d.Resources.Asset.ID != "" {
		declared[d.Resources.Asset.ID] = struct{}{}
	}

	clip := d.Library.Event.Clip
	if _, ok := declared[clip.Ref]; !ok {
		return fmt.Errorf("fcpxml: clip ref %q does not resolve to a declared resource", clip.Ref)
	}
	if _, ok := declared[clip.Format]; !ok {
		return fmt.Errorf("fcpxml: clip format %q does not resolve to a declared resource", clip.Format)
	}
	return nil
}

// Serialize writes the document as pretty-printed XML with a declaration
// header. Indentation is stable so exports are diffable.
func (d *Document) Serialize(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "\t")
	if err := encoder.Encode(d); err != nil {
		return fmt.Errorf("encode fcpxml: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
