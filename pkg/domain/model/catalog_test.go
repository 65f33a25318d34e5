package model_test

import (
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/wardrobe/pkg/domain/model"
)

func TestParseCatalogInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    model.CatalogID
		wantErr bool
	}{
		{name: "catalog URL", input: "https://www.roblox.com/catalog/98765/some-name", want: "98765"},
		{name: "catalog URL with newline", input: "https://www.roblox.com/catalog/98765/some-name\n", want: "98765"},
		{name: "catalog URL without name", input: "https://www.roblox.com/catalog/42", want: "42"},
		{name: "catalog URL with query", input: "https://www.roblox.com/catalog/42?x=1", want: "42"},
		{name: "bare ID", input: "12345", want: "12345"},
		{name: "bare ID with spaces", input: "  12345 \r\n", want: "12345"},
		{name: "non digit is passed through", input: "abc", want: "abc"},
		{name: "catalog URL without ID", input: "https://www.roblox.com/catalog/some-name", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.ParseCatalogInput(tt.input)
			if tt.wantErr {
				gt.Error(t, err)
				gt.Value(t, goerr.HasTag(err, model.ErrTagInvalidID)).Equal(true)
				return
			}
			gt.NoError(t, err)
			gt.Value(t, got).Equal(tt.want)
		})
	}
}

func TestIsCatalogURL(t *testing.T) {
	gt.Value(t, model.IsCatalogURL("https://www.roblox.com/catalog/1/x")).Equal(true)
	gt.Value(t, model.IsCatalogURL("12345")).Equal(false)
	gt.Value(t, model.IsCatalogURL("ids.txt")).Equal(false)
	gt.Value(t, model.IsCatalogURL("https://example.com/other/1")).Equal(false)
}
