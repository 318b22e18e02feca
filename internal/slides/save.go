package slides

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tsekula/n8n-python/internal/models"
)

// Save writes the deck to filePath. Parts without rewritten paragraphs are
// copied from the source package unchanged.
func (d *Deck) Save(filePath string) error {
	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", models.ErrIO, filePath, err)
	}

	if err := d.Write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", models.ErrIO, filePath, err)
	}
	return nil
}

// Write writes the deck as a zip package to w.
func (d *Deck) Write(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, zf := range d.zr.File {
		pt, ok := d.parts[zf.Name]
		if !ok || !pt.modified() {
			if err := zw.Copy(zf); err != nil {
				return fmt.Errorf("%w: copy %s: %w", models.ErrIO, zf.Name, err)
			}
			continue
		}

		hdr := zf.FileHeader
		hdr.Extra = nil
		hdr.CRC32 = 0
		hdr.CompressedSize = 0
		hdr.UncompressedSize = 0
		hdr.CompressedSize64 = 0
		hdr.UncompressedSize64 = 0

		fw, err := zw.CreateHeader(&hdr)
		if err != nil {
			return fmt.Errorf("%w: write %s: %w", models.ErrIO, zf.Name, err)
		}
		if _, err := fw.Write(pt.render()); err != nil {
			return fmt.Errorf("%w: write %s: %w", models.ErrIO, zf.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("%w: finish package: %w", models.ErrIO, err)
	}
	return nil
}

// render returns the part data with every dirty paragraph rewritten.
func (pt *part) render() []byte {
	var buf bytes.Buffer
	last := 0
	for _, p := range pt.paras {
		if !p.dirty {
			continue
		}
		if p.selfClosing {
			buf.Write(pt.data[last:p.elemStart])
			tag := bytes.TrimSuffix(pt.data[p.elemStart:p.elemEnd], []byte("/>"))
			buf.Write(bytes.TrimRight(tag, " \t\r\n"))
			buf.WriteByte('>')
			p.writeRuns(&buf)
			buf.WriteString("</" + p.qualify("p") + ">")
			last = p.elemEnd
			continue
		}
		buf.Write(pt.data[last:p.start])
		p.writeRuns(&buf)
		last = p.end
	}
	buf.Write(pt.data[last:])
	return buf.Bytes()
}

func (p *Paragraph) writeRuns(buf *bytes.Buffer) {
	for i, seg := range strings.Split(p.text, "\v") {
		if i > 0 {
			buf.WriteString("<" + p.qualify("br") + "/>")
		}
		if seg == "" {
			continue
		}
		buf.WriteString("<" + p.qualify("r") + ">")
		buf.Write(p.runProps)
		buf.WriteString("<" + p.qualify("t") + ">")
		xml.EscapeText(buf, []byte(seg))
		buf.WriteString("</" + p.qualify("t") + "></" + p.qualify("r") + ">")
	}
}

func (p *Paragraph) qualify(local string) string {
	if p.prefix == "" {
		return local
	}
	return p.prefix + ":" + local
}
