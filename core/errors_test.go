package core

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestErrorCodes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.core")
	defer teardown()
	//
	if Code(nil) != NOERROR {
		t.Errorf("expected nil error to have code NOERROR, has %d", Code(nil))
	}
	if Code(errors.New("plain")) != EINTERNAL {
		t.Errorf("expected plain error to be classified as internal")
	}
	err := WrapError(fs.ErrNotExist, EMISSING, "font not found: %s", "cmr10")
	if Code(err) != EMISSING {
		t.Errorf("expected code EMISSING, have %d", Code(err))
	}
	if UserMessage(err) != "font not found: cmr10" {
		t.Errorf("unexpected user message: %q", UserMessage(err))
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected wrapped error to retain its cause")
	}
}

func TestErrorCodeThroughFmtWrap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.core")
	defer teardown()
	//
	inner := Error(EREFUSED, "host refused font %s", "Go Regular")
	outer := fmt.Errorf("registration: %w", inner)
	if Code(outer) != EREFUSED {
		t.Errorf("expected code EREFUSED to be found in chain, have %d", Code(outer))
	}
	if UserMessage(ErrorWithCode(nil, EUNSUPPORTED)) != "unsupported" {
		t.Errorf("expected default text for EUNSUPPORTED")
	}
}

func TestErrorTextCarriesMessage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.core")
	defer teardown()
	//
	refused := Error(EREFUSED, "cannot register the font %s", "Go Regular")
	if refused.Error() != "[126] cannot register the font Go Regular" {
		t.Errorf("unexpected error text: %q", refused.Error())
	}
	missing := WrapError(fs.ErrNotExist, EMISSING, "font not found: %s", "cmr10")
	if missing.Error() != "[122] font not found: cmr10: file does not exist" {
		t.Errorf("unexpected error text: %q", missing.Error())
	}
	if ErrorWithCode(nil, EINTERNAL).Error() != "[125] internal error" {
		t.Errorf("unexpected error text: %q", ErrorWithCode(nil, EINTERNAL).Error())
	}
}
