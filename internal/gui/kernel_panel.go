// Kernel selection controls
package gui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"kernel-convolution/internal/algorithms"
	"kernel-convolution/internal/config"
)

// KernelPanel lets the user pick a kernel family and its parameters.
type KernelPanel struct {
	kindSelect   *widget.Select
	presetSelect *widget.Select
	sizeEntry    *widget.Entry
	sigmaEntry   *widget.Entry
	applyButton  *widget.Button
	container    *fyne.Container

	onApply func(algorithms.Spec)
	onError func(error)
}

func NewKernelPanel(initial config.KernelConfig, onApply func(algorithms.Spec), onError func(error)) *KernelPanel {
	kp := &KernelPanel{onApply: onApply, onError: onError}

	kinds := make([]string, 0, 3)
	for _, info := range algorithms.KernelKinds() {
		kinds = append(kinds, string(info.Kind))
	}

	kp.sizeEntry = widget.NewEntry()
	kp.sizeEntry.SetText(strconv.Itoa(initial.Size))
	kp.sigmaEntry = widget.NewEntry()
	kp.sigmaEntry.SetText(strconv.FormatFloat(initial.Sigma, 'g', -1, 64))
	kp.presetSelect = widget.NewSelect(algorithms.PresetNames(), nil)
	kp.presetSelect.SetSelected(initial.Preset)
	kp.kindSelect = widget.NewSelect(kinds, kp.kindChanged)
	kp.applyButton = widget.NewButton("Apply Kernel", kp.apply)

	form := widget.NewForm(
		widget.NewFormItem("Type", kp.kindSelect),
		widget.NewFormItem("Size", kp.sizeEntry),
		widget.NewFormItem("Sigma", kp.sigmaEntry),
		widget.NewFormItem("Preset", kp.presetSelect),
	)
	kp.container = container.NewVBox(form, kp.applyButton)

	if kind, err := algorithms.ParseKind(initial.Type); err == nil {
		kp.kindSelect.SetSelected(string(kind))
	} else {
		kp.kindSelect.SetSelected(string(algorithms.KindGaussian))
	}
	return kp
}

func (kp *KernelPanel) kindChanged(kind string) {
	switch algorithms.Kind(kind) {
	case algorithms.KindGaussian:
		kp.sizeEntry.Enable()
		kp.sigmaEntry.Enable()
		kp.presetSelect.Disable()
	case algorithms.KindAverage:
		kp.sizeEntry.Enable()
		kp.sigmaEntry.Disable()
		kp.presetSelect.Disable()
	case algorithms.KindCustom:
		kp.sizeEntry.Disable()
		kp.sigmaEntry.Disable()
		kp.presetSelect.Enable()
	}
}

func (kp *KernelPanel) apply() {
	spec, err := ParseKernelForm(kp.kindSelect.Selected, kp.sizeEntry.Text, kp.sigmaEntry.Text, kp.presetSelect.Selected)
	if err != nil {
		kp.onError(err)
		return
	}
	kp.onApply(spec)
}

func (kp *KernelPanel) GetContainer() fyne.CanvasObject {
	return kp.container
}

// ParseKernelForm turns the text fields of the kernel panel into a spec.
func ParseKernelForm(kind, size, sigma, preset string) (algorithms.Spec, error) {
	params := map[string]interface{}{}
	k, err := algorithms.ParseKind(kind)
	if err != nil {
		return nil, err
	}

	if k == algorithms.KindGaussian || k == algorithms.KindAverage {
		n, err := strconv.Atoi(strings.TrimSpace(size))
		if err != nil {
			return nil, fmt.Errorf("%w: size %q is not an integer", algorithms.ErrInvalidKernelSize, size)
		}
		params["size"] = n
	}
	if k == algorithms.KindGaussian {
		s, err := strconv.ParseFloat(strings.TrimSpace(sigma), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: sigma %q is not a number", algorithms.ErrInvalidParameter, sigma)
		}
		params["sigma"] = s
	}
	if k == algorithms.KindCustom && preset != "" {
		params["preset"] = preset
	}
	return algorithms.SpecFromParams(string(k), params)
}
