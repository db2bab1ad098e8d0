package teanav

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cristianoliveira/viewstack/pkg/navigation"
)

// PushPopup shows the screen for viewModel above everything else.
func (h *Host) PushPopup(ctx context.Context, viewModel navigation.ViewModel, contract string, animate bool) error {
	model, err := h.locator.Resolve(viewModel, contract)
	if err != nil {
		return err
	}
	return h.do(ctx, func(h *Host) tea.Cmd {
		h.events.Put(navigation.PopupEvent{Kind: navigation.PopupPushing, ViewModel: viewModel, Animated: animate})
		e := entry{vm: viewModel, model: model, contract: contract}
		h.popups = append(h.popups, e)
		h.events.Put(navigation.PopupEvent{Kind: navigation.PopupPushed, ViewModel: viewModel, Animated: animate})
		return h.initEntry(e)
	})
}

// PopPopup hides the top popup.
func (h *Host) PopPopup(ctx context.Context, animate bool) error {
	var popErr error
	err := h.do(ctx, func(h *Host) tea.Cmd {
		if len(h.popups) == 0 {
			popErr = errNothingToPop
			return nil
		}
		h.removePopupAt(len(h.popups)-1, animate)
		return nil
	})
	return errors.Join(err, popErr)
}

// PopAllPopups hides every popup, top first.
func (h *Host) PopAllPopups(ctx context.Context, animate bool) error {
	return h.do(ctx, func(h *Host) tea.Cmd {
		for len(h.popups) > 0 {
			h.removePopupAt(len(h.popups)-1, animate)
		}
		return nil
	})
}

// RemovePopup hides the last occurrence of viewModel.
func (h *Host) RemovePopup(ctx context.Context, viewModel navigation.ViewModel) error {
	return h.do(ctx, func(h *Host) tea.Cmd {
		for i := len(h.popups) - 1; i >= 0; i-- {
			if h.popups[i].vm == viewModel {
				h.removePopupAt(i, false)
				break
			}
		}
		return nil
	})
}

// Events reports every popup change. Back-key pops are marked Native.
func (h *Host) Events() <-chan navigation.PopupEvent {
	return h.events.C
}

func (h *Host) removePopupAt(i int, animate bool) {
	vm := h.popups[i].vm
	h.events.Put(navigation.PopupEvent{Kind: navigation.PopupPopping, ViewModel: vm, Animated: animate})
	h.popups = append(h.popups[:i:i], h.popups[i+1:]...)
	h.events.Put(navigation.PopupEvent{Kind: navigation.PopupPopped, ViewModel: vm, Animated: animate})
}

var (
	_ navigation.View      = (*Host)(nil)
	_ navigation.PopupHost = (*Host)(nil)
	_ tea.Model            = (*Host)(nil)
)
