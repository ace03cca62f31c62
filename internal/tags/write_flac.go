package tags

import (
	"fmt"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	flac "github.com/go-flac/go-flac"
	"go.senan.xyz/taglib"
)

// Save writes the comments back to the file, replacing the previous
// Vorbis comment block. An ID3v2 header in front of the stream is dropped.
func (f *File) Save() error {
	if f.stream == nil {
		if err := taglib.WriteTags(f.Path, f.Comments.Map(), taglib.Clear); err != nil {
			return fmt.Errorf("write tags: %w", err)
		}
		return nil
	}

	// Always create a fresh comment block to avoid duplicate tags
	cmts := flacvorbis.New()
	if vendor := f.Comments.Vendor(); vendor != "" {
		cmts.Vendor = vendor
	}

	var addErr error
	f.Comments.each(func(name string, values []string) {
		for _, v := range values {
			if addErr != nil {
				return
			}
			if err := cmts.Add(name, v); err != nil {
				addErr = fmt.Errorf("add %s: %w", name, err)
			}
		}
	})
	if addErr != nil {
		return addErr
	}

	cmtBlock := cmts.Marshal()
	if idx := vorbisCommentIndex(f.stream); idx >= 0 {
		f.stream.Meta[idx] = &cmtBlock
	} else {
		f.stream.Meta = append(f.stream.Meta, &cmtBlock)
	}

	if err := f.stream.Save(f.Path); err != nil {
		return fmt.Errorf("save file: %w", err)
	}
	f.id3Size = 0
	return nil
}

// Picture describes one embedded picture block.
type Picture struct {
	Kind        string
	MIME        string
	Description string
	Width       uint32
	Height      uint32
	Size        int
}

// Pictures decodes the embedded picture blocks of the file.
// Blocks that fail to decode are skipped.
func (f *File) Pictures() []Picture {
	if f.stream == nil {
		return nil
	}
	var pics []Picture
	for _, meta := range f.stream.Meta {
		if meta.Type != flac.Picture {
			continue
		}
		pic, err := flacpicture.ParseFromMetaDataBlock(*meta)
		if err != nil {
			continue
		}
		pics = append(pics, Picture{
			Kind:        pictureKind(pic.PictureType),
			MIME:        pic.MIME,
			Description: pic.Description,
			Width:       pic.Width,
			Height:      pic.Height,
			Size:        len(pic.ImageData),
		})
	}
	return pics
}

func pictureKind(t flacpicture.PictureType) string {
	switch t {
	case flacpicture.PictureTypeFrontCover:
		return "front cover"
	case flacpicture.PictureTypeBackCover:
		return "back cover"
	default:
		return fmt.Sprintf("type %d", t)
	}
}
