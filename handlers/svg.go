package handlers

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	errNotSVG    = errors.New("image is not a valid svg document")
	errUnsafeSVG = errors.New("svg image must not contain scripts or event handlers")
)

// checkSVG проверяет, что корневой элемент документа - <svg>, и что в нем нет
// скриптов: картинки бейджей раздаются из публичного бакета.
func checkSVG(data []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	root := true
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			if root {
				return errNotSVG
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", errNotSVG, err)
		}

		el, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		name := strings.ToLower(el.Name.Local)
		if root {
			if name != "svg" {
				return errNotSVG
			}
			root = false
		}

		switch name {
		case "script", "foreignobject":
			return errUnsafeSVG
		}
		for _, attr := range el.Attr {
			attrName := strings.ToLower(attr.Name.Local)
			if strings.HasPrefix(attrName, "on") {
				return errUnsafeSVG
			}
			if attrName == "href" && strings.HasPrefix(strings.ToLower(strings.TrimSpace(attr.Value)), "javascript:") {
				return errUnsafeSVG
			}
		}
	}
}
