package export

import (
	"fmt"
	"io"
	"os"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/RackPlan/internal/engine"
)

// DXF layer names.
const (
	LayerOutline = "WAREHOUSE"
	LayerBays    = "BAYS"
)

// buildDXF draws the warehouse outline and one closed rectangle per bay in
// feet. DXF's y axis points up, so rows are mirrored to keep row 0 at the
// top of the plan.
func buildDXF(layout engine.Layout) (*drawing.Drawing, error) {
	if layout.Length <= 0 || layout.Width <= 0 {
		return nil, fmt.Errorf("layout has no floor dimensions")
	}

	d := dxf.NewDrawing()
	layers := []struct {
		name  string
		color color.ColorNumber
	}{
		{LayerOutline, color.White},
		{LayerBays, color.Cyan},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.color, dxf.DefaultLineType, false); err != nil {
			return nil, fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
	}

	if err := d.ChangeLayer(LayerOutline); err != nil {
		return nil, err
	}
	if err := rect(d, 0, 0, layout.Length, layout.Width); err != nil {
		return nil, err
	}

	if err := d.ChangeLayer(LayerBays); err != nil {
		return nil, err
	}
	for _, b := range layout.Bays {
		y := layout.Width - b.Y - b.Width
		if err := rect(d, b.X, y, b.Length, b.Width); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// rect adds a closed rectangle as four LINE entities.
func rect(d *drawing.Drawing, x, y, w, h float64) error {
	corners := [][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			return fmt.Errorf("failed to add line: %w", err)
		}
	}
	return nil
}

// ExportDXF writes the floor plan of layout to path.
func ExportDXF(path string, layout engine.Layout) error {
	d, err := buildDXF(layout)
	if err != nil {
		return err
	}
	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}

// WriteDXF writes the floor plan of layout to w. The drawing library only
// saves to files, so the output is staged in a temporary file.
func WriteDXF(w io.Writer, layout engine.Layout) error {
	tmp, err := os.CreateTemp("", "rackplan-*.dxf")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	if err := ExportDXF(path, layout); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to reopen DXF: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to write DXF: %w", err)
	}
	return nil
}
