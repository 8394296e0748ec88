package panel

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	merge := &ApplyConfig{ReplaceMerge: []string{"series"}}

	tests := []struct {
		name       string
		result     *CodeResult
		wantOption Option
		wantConfig ApplyConfig
	}{
		{
			name:       "nil result",
			result:     nil,
			wantOption: Option{"backgroundColor": "transparent"},
			wantConfig: ApplyConfig{NotMerge: true},
		},
		{
			name:       "v1 option",
			result:     &CodeResult{Version: 1, Option: Option{"title": "t"}},
			wantOption: Option{"backgroundColor": "transparent", "title": "t"},
			wantConfig: ApplyConfig{NotMerge: true},
		},
		{
			name:       "v1 config is ignored",
			result:     &CodeResult{Version: 1, Option: Option{}, Config: merge},
			wantOption: Option{"backgroundColor": "transparent"},
			wantConfig: ApplyConfig{NotMerge: true},
		},
		{
			name:       "v2 without config",
			result:     &CodeResult{Version: 2},
			wantOption: Option{"backgroundColor": "transparent"},
			wantConfig: ApplyConfig{NotMerge: true},
		},
		{
			name:       "v2 config replaces default",
			result:     &CodeResult{Version: 2, Option: Option{"series": []any{}}, Config: merge},
			wantOption: Option{"backgroundColor": "transparent", "series": []any{}},
			wantConfig: ApplyConfig{ReplaceMerge: []string{"series"}},
		},
		{
			name:       "script background wins",
			result:     &CodeResult{Version: 1, Option: Option{"backgroundColor": "#fff"}},
			wantOption: Option{"backgroundColor": "#fff"},
			wantConfig: ApplyConfig{NotMerge: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			option, cfg := Normalize(tt.result)

			if !reflect.DeepEqual(option, tt.wantOption) {
				t.Errorf("option = %v, want %v", option, tt.wantOption)
			}
			if !reflect.DeepEqual(cfg, tt.wantConfig) {
				t.Errorf("config = %+v, want %+v", cfg, tt.wantConfig)
			}
		})
	}
}

func TestNormalize_DoesNotMutateResult(t *testing.T) {
	result := &CodeResult{Version: 1, Option: Option{"title": "t"}}

	Normalize(result)

	if _, ok := result.Option["backgroundColor"]; ok {
		t.Error("Normalize must not modify the script option")
	}
}
