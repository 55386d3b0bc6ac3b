// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glsurface

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// device is the OpenGL side of a Surface.
type device interface {
	makeCurrent()
	// beginFrame clears the default framebuffer to transparent.
	beginFrame(w, h int32)
	// composite draws premultiplied RGBA pixels over the default
	// framebuffer with source-over blending.
	composite(pix []byte, w, h int32)
	// endFrame checks for GL errors and swaps buffers.
	endFrame() error
	framebufferSizes() ([4]int32, error)
	release()
}

// The quad covers the viewport as a 4-vertex strip generated from
// gl_VertexID. Row 0 of the texture is the top of the frame.
const vertexShader = `#version 410 core
out vec2 uv;
void main() {
	vec2 pos = vec2(float(gl_VertexID & 1), float((gl_VertexID >> 1) & 1));
	uv = vec2(pos.x, 1.0 - pos.y);
	gl_Position = vec4(pos * 2.0 - 1.0, 0.0, 1.0);
}
`

const fragmentShader = `#version 410 core
in vec2 uv;
uniform sampler2D frame;
out vec4 color;
void main() {
	color = texture(frame, uv);
}
`

// glDevice draws through the window's OpenGL 4.1 core context.
type glDevice struct {
	win        *glfw.Window
	program    uint32
	vao        uint32
	tex        uint32
	texW, texH int32
}

var _ device = (*glDevice)(nil)

func newGLDevice(win *glfw.Window) (*glDevice, error) {
	win.MakeContextCurrent()
	if err := initGL(); err != nil {
		return nil, fmt.Errorf("initialize OpenGL bindings: %w", err)
	}
	d := &glDevice{win: win}
	program, err := compileProgram(vertexShader, fragmentShader)
	if err != nil {
		return nil, err
	}
	d.program = program
	gl.GenVertexArrays(1, &d.vao)
	gl.GenTextures(1, &d.tex)
	gl.UseProgram(d.program)
	gl.Uniform1i(gl.GetUniformLocation(d.program, gl.Str("frame\x00")), 0)
	gl.UseProgram(0)
	if err := glError(); err != nil {
		d.release()
		return nil, err
	}
	return d, nil
}

func (d *glDevice) makeCurrent() { d.win.MakeContextCurrent() }

func (d *glDevice) beginFrame(w, h int32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, w, h)
	gl.Disable(gl.SCISSOR_TEST)
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (d *glDevice) composite(pix []byte, w, h int32) {
	// A notifier may have changed any of this state.
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, w, h)
	gl.Disable(gl.SCISSOR_TEST)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	if w != d.texW || h != d.texH {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
		d.texW, d.texH = w, h
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, w, h, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	}

	gl.UseProgram(d.program)
	gl.BindVertexArray(d.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.Disable(gl.BLEND)
}

func (d *glDevice) endFrame() error {
	if err := glError(); err != nil {
		return err
	}
	d.win.SwapBuffers()
	return nil
}

func (d *glDevice) framebufferSizes() ([4]int32, error) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	var sizes [4]int32
	for i, pname := range []uint32{
		gl.FRAMEBUFFER_ATTACHMENT_RED_SIZE,
		gl.FRAMEBUFFER_ATTACHMENT_GREEN_SIZE,
		gl.FRAMEBUFFER_ATTACHMENT_BLUE_SIZE,
		gl.FRAMEBUFFER_ATTACHMENT_ALPHA_SIZE,
	} {
		gl.GetFramebufferAttachmentParameteriv(gl.FRAMEBUFFER, gl.BACK_LEFT, pname, &sizes[i])
	}
	return sizes, glError()
}

func (d *glDevice) release() {
	if d.tex != 0 {
		gl.DeleteTextures(1, &d.tex)
		d.tex = 0
	}
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
	if d.program != 0 {
		gl.DeleteProgram(d.program)
		d.program = 0
	}
}

func compileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vs, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &n)
		log := strings.Repeat("\x00", int(n+1))
		gl.GetProgramInfoLog(program, n, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("glsurface: link program: %s", strings.TrimRight(log, "\x00"))
	}
	return program, nil
}

func compileShader(source string, kind uint32) (uint32, error) {
	shader := gl.CreateShader(kind)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &n)
		log := strings.Repeat("\x00", int(n+1))
		gl.GetShaderInfoLog(shader, n, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("glsurface: compile shader: %s", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func glError() error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return GLError(code)
	}
	return nil
}
