// Package shader provides OpenGL shader compilation and the uniform-setting
// contract the scene core renders through.
package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// Stage is a step of program construction.
type Stage string

const (
	StageVertex   Stage = "vertex"
	StageFragment Stage = "fragment"
	StageLink     Stage = "link"
)

// BuildError reports which stage rejected the sources and the driver's
// info log for it.
type BuildError struct {
	Stage   Stage
	InfoLog string
}

func (e *BuildError) Error() string {
	msg := strings.TrimRight(e.InfoLog, "\x00\r\n ")
	if msg == "" {
		msg = "no info log"
	}
	return fmt.Sprintf("%s stage: %s", e.Stage, msg)
}

// build compiles both stages and links them. Failures are logged with the
// stage and returned as *BuildError.
func build(log *zap.Logger, vertexSrc, fragmentSrc string) (uint32, error) {
	vert, err := compileStage(log, StageVertex, gl.VERTEX_SHADER, vertexSrc)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vert)

	frag, err := compileStage(log, StageFragment, gl.FRAGMENT_SHADER, fragmentSrc)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(frag)

	program := gl.CreateProgram()
	gl.AttachShader(program, vert)
	gl.AttachShader(program, frag)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &n)
		msg := infoLog(n, func(buf []byte) { gl.GetProgramInfoLog(program, n, nil, &buf[0]) })
		gl.DeleteProgram(program)
		return 0, failed(log, StageLink, msg)
	}
	return program, nil
}

func compileStage(log *zap.Logger, stage Stage, kind uint32, source string) (uint32, error) {
	id := gl.CreateShader(kind)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, csource, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &n)
		msg := infoLog(n, func(buf []byte) { gl.GetShaderInfoLog(id, n, nil, &buf[0]) })
		gl.DeleteShader(id)
		return 0, failed(log, stage, msg)
	}
	return id, nil
}

// infoLog reads a driver log of n bytes (terminator included).
func infoLog(n int32, read func([]byte)) string {
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	read(buf)
	return string(buf)
}

func failed(log *zap.Logger, stage Stage, msg string) error {
	err := &BuildError{Stage: stage, InfoLog: msg}
	log.Error("shader build failed", zap.String("stage", string(stage)), zap.Error(err))
	return err
}
