package settings

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/GoStoreInvoice/GoStoreInvoice/internal/db/controller/setting"
)

// OptionName is the storage key of the settings blob.
const OptionName = setting.KeyInvoiceSettings

// Load reads the persisted settings blob. A missing blob is not an error and
// yields an empty mapping.
func Load(db *gorm.DB) (Values, error) {
	record, err := setting.Get(db, OptionName)
	if err != nil {
		if errors.Is(err, setting.ErrSettingNotFound) {
			return Values{}, nil
		}
		return nil, fmt.Errorf("load settings: %w", err)
	}

	values := Values{}
	if len(record.Value) > 0 {
		if err := json.Unmarshal(record.Value, &values); err != nil {
			return nil, fmt.Errorf("decode settings: %w", err)
		}
	}

	return values, nil
}

// Save persists the whole mapping under the settings key, overwriting any
// previous blob unconditionally.
func Save(db *gorm.DB, values Values) error {
	blob, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if _, err := setting.Set(db, OptionName, blob); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	return nil
}
