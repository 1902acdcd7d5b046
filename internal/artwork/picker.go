package artwork

import (
	"errors"

	"github.com/ncruces/zenity"
)

// Pick asks for an artwork file. It returns "" when the dialog is canceled.
func Pick() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Artwork"),
		zenity.FileFilters{{
			Name:     "Images",
			Patterns: []string{"*.png", "*.jpg", "*.jpeg", "*.gif", "*.webp"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", err
	}
	return filename, nil
}
