package catalog

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/kevinaaaquil/portfolio/backend/models"
)

// Input is the editable part of an item as submitted by the add and edit forms.
type Input struct {
	TitleEN       string `json:"title_en"`
	TitleNO       string `json:"title_no"`
	ImageEN       string `json:"image_en"`
	ImageNO       string `json:"image_no"`
	DescriptionEN string `json:"description_en"`
	DescriptionNO string `json:"description_no"`
	AuthorFirst   string `json:"author_first"`
	AuthorMiddle  string `json:"author_middle"`
	AuthorLast    string `json:"author_last"`
}

// InputFromItem fills an edit buffer from a stored item.
func InputFromItem(it *models.Item) Input {
	in := Input{
		TitleEN:       it.TitleEN,
		TitleNO:       it.TitleNO,
		ImageEN:       it.ImageEN,
		ImageNO:       it.ImageNO,
		DescriptionEN: it.DescriptionEN,
		DescriptionNO: it.DescriptionNO,
	}
	if it.Author != nil {
		in.AuthorFirst = it.Author.First
		in.AuthorMiddle = it.Author.Middle
		in.AuthorLast = it.Author.Last
	}
	return in
}

func (in *Input) normalize() {
	for _, f := range []*string{
		&in.TitleEN, &in.TitleNO, &in.ImageEN, &in.ImageNO, &in.DescriptionEN, &in.DescriptionNO,
		&in.AuthorFirst, &in.AuthorMiddle, &in.AuthorLast,
	} {
		*f = strings.TrimSpace(*f)
	}
}

// Validate requires both titles and both descriptions; image fields must be URLs when set.
func (in Input) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.TitleEN, validation.Required, validation.Length(1, 300)),
		validation.Field(&in.TitleNO, validation.Required, validation.Length(1, 300)),
		validation.Field(&in.DescriptionEN, validation.Required),
		validation.Field(&in.DescriptionNO, validation.Required),
		validation.Field(&in.ImageEN, is.URL),
		validation.Field(&in.ImageNO, is.URL),
	)
}

func (in Input) author(cat models.Category) *models.Author {
	if !cat.HasAuthor() || in.AuthorFirst+in.AuthorMiddle+in.AuthorLast == "" {
		return nil
	}
	return &models.Author{First: in.AuthorFirst, Middle: in.AuthorMiddle, Last: in.AuthorLast}
}

func (in Input) item(cat models.Category) *models.Item {
	return &models.Item{
		TitleEN:       in.TitleEN,
		TitleNO:       in.TitleNO,
		ImageEN:       in.ImageEN,
		ImageNO:       in.ImageNO,
		DescriptionEN: in.DescriptionEN,
		DescriptionNO: in.DescriptionNO,
		Author:        in.author(cat),
	}
}
