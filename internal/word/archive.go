// archive.go handles the .docx container: reading word/document.xml out of
// the ZIP package and repackaging a mutated document part.
//
// Design: repackaging replaces exactly one archive entry and copies every
// other entry through byte-for-byte. The mutation logic never touches
// styles, media, or relationship parts, so rewriting them would only risk
// silently dropping content a standard reader expects.

package word

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/beevik/etree"
)

// documentPart is the archive entry holding the document body.
const documentPart = "word/document.xml"

// readDocumentXML extracts word/document.xml from a .docx archive.
func readDocumentXML(fileBytes []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(fileBytes), int64(len(fileBytes)))
	if err != nil {
		return nil, fmt.Errorf("not a .docx file (ZIP archive expected): %w", err)
	}
	for _, f := range zr.File {
		if f.Name != documentPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", documentPart, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", documentPart, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("not a .docx file: archive has no %s", documentPart)
}

// repackage rewrites the .docx archive with modifiedXML in place of
// word/document.xml. All other entries are copied unchanged.
func repackage(fileBytes, modifiedXML []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(fileBytes), int64(len(fileBytes)))
	if err != nil {
		return nil, fmt.Errorf("not a .docx file (ZIP archive expected): %w", err)
	}

	var out bytes.Buffer
	zw := zip.NewWriter(&out)
	for _, f := range zr.File {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   f.Name,
			Method: zip.Deflate,
		})
		if err != nil {
			return nil, fmt.Errorf("write archive entry %s: %w", f.Name, err)
		}
		if f.Name == documentPart {
			if _, err := w.Write(modifiedXML); err != nil {
				return nil, fmt.Errorf("write %s: %w", documentPart, err)
			}
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open archive entry %s: %w", f.Name, err)
		}
		if _, err := io.Copy(w, rc); err != nil {
			rc.Close()
			return nil, fmt.Errorf("copy archive entry %s: %w", f.Name, err)
		}
		rc.Close()
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalise archive: %w", err)
	}
	return out.Bytes(), nil
}

// parseDocument parses word/document.xml and returns the document tree and
// its <w:body> element. The tree is needed for re-serialisation, the body
// for everything else.
func parseDocument(fileBytes []byte) (*etree.Document, *etree.Element, error) {
	docXML, err := readDocumentXML(fileBytes)
	if err != nil {
		return nil, nil, err
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(docXML); err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", documentPart, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, nil, fmt.Errorf("parse %s: empty document", documentPart)
	}
	body := childByTag(root, "w:body")
	if body == nil {
		return nil, nil, fmt.Errorf("no <w:body> element found in %s", documentPart)
	}
	return doc, body, nil
}

// serialise writes the document tree back to bytes, preserving the XML
// declaration the original part carried.
func serialise(doc *etree.Document) ([]byte, error) {
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serialise %s: %w", documentPart, err)
	}
	return out, nil
}
