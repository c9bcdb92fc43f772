package texture

import (
	"errors"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// GPU uploads, binds and releases textures.
type GPU interface {
	Upload(img *Image) (uint32, error)
	Bind(unit int, handle uint32)
	Delete(handles []uint32)
}

// GL is the OpenGL GPU implementation. It must be used on the render thread.
type GL struct{}

var _ GPU = GL{}

// Upload creates a mipmapped, repeat-wrapped, linearly filtered 2D texture.
func (GL) Upload(img *Image) (uint32, error) {
	if img == nil || len(img.Pix) == 0 {
		return 0, errors.New("no pixel data")
	}

	internal := int32(gl.RGBA8)
	if img.Channels == 3 {
		internal = gl.RGB8
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.TexImage2D(gl.TEXTURE_2D, 0, internal,
		int32(img.Width), int32(img.Height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if e := gl.GetError(); e != gl.NO_ERROR {
		gl.DeleteTextures(1, &id)
		return 0, errors.New("texture upload failed")
	}
	return id, nil
}

func (GL) Bind(unit int, handle uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, handle)
}

func (GL) Delete(handles []uint32) {
	if len(handles) == 0 {
		return
	}
	gl.DeleteTextures(int32(len(handles)), &handles[0])
}
