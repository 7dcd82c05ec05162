package game

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Mesh vertex shader: bodies, cloud shells and rings. Vertices carry
// position, normal and uv (see solar.VertexStride).
const meshVertSrc = `#version 410 core

layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec2 aUV;

uniform mat4 uModel;
uniform mat4 uViewProj;

out vec3 vWorldPos;
out vec3 vNormal;
out vec2 vUV;

void main() {
    vec4 world = uModel * vec4(aPos, 1.0);
    vWorldPos = world.xyz;
    vNormal = normalize(mat3(uModel) * aNormal);
    vUV = aUV;
    gl_Position = uViewProj * world;
}
` + "\x00"

// Mesh fragment shader: ambient + one decaying point light + four
// directional fills. Unlit meshes (the star) output their albedo.
const meshFragSrc = `#version 410 core

uniform vec3 uColor;
uniform float uOpacity;
uniform bool uUnlit;
uniform bool uDoubleSided;

uniform sampler2D uTex;
uniform bool uHasTex;
uniform sampler2D uAlphaTex;
uniform bool uHasAlpha;
uniform sampler2D uBumpTex;
uniform bool uHasBump;
uniform float uBumpScale;

uniform vec3 uAmbient;
uniform vec3 uPointPos;
uniform vec3 uPointColor;
uniform float uPointDecay;
uniform vec3 uDirDir[4];
uniform vec3 uDirColor[4];

in vec3 vWorldPos;
in vec3 vNormal;
in vec2 vUV;
out vec4 FragColor;

vec3 perturbNormal(vec3 pos, vec3 n, float h) {
    vec3 dpx = dFdx(pos);
    vec3 dpy = dFdy(pos);
    float dhx = dFdx(h);
    float dhy = dFdy(h);
    vec3 r1 = cross(dpy, n);
    vec3 r2 = cross(n, dpx);
    float det = dot(dpx, r1);
    vec3 grad = sign(det) * (dhx * r1 + dhy * r2);
    return normalize(abs(det) * n - grad);
}

void main() {
    vec4 albedo = vec4(uColor, uOpacity);
    if (uHasTex) {
        vec4 t = texture(uTex, vUV);
        albedo = vec4(t.rgb, t.a * uOpacity);
    }
    if (uHasAlpha) {
        albedo.a *= texture(uAlphaTex, vUV).g;
    }
    if (albedo.a < 0.01) discard;

    if (uUnlit) {
        FragColor = albedo;
        return;
    }

    vec3 n = normalize(vNormal);
    if (uDoubleSided && !gl_FrontFacing) {
        n = -n;
    }
    if (uHasBump) {
        n = perturbNormal(vWorldPos, n, texture(uBumpTex, vUV).r * uBumpScale);
    }

    vec3 light = uAmbient;
    vec3 toPoint = uPointPos - vWorldPos;
    float d = length(toPoint);
    float atten = 1.0 / max(pow(d, uPointDecay), 0.01);
    light += uPointColor * atten * max(dot(n, toPoint / max(d, 1e-6)), 0.0);
    for (int i = 0; i < 4; i++) {
        light += uDirColor[i] * max(dot(n, uDirDir[i]), 0.0);
    }

    FragColor = vec4(albedo.rgb * light, albedo.a);
}
` + "\x00"

// Line shader: orbit paths, one flat colour per draw.
const lineVertSrc = `#version 410 core

layout(location = 0) in vec3 aPos;

uniform mat4 uModel;
uniform mat4 uViewProj;

void main() {
    gl_Position = uViewProj * uModel * vec4(aPos, 1.0);
}
` + "\x00"

const lineFragSrc = `#version 410 core

uniform vec4 uColor;

out vec4 FragColor;

void main() {
    FragColor = uColor;
}
` + "\x00"

// Background shader: one oversized triangle covering the viewport,
// sampling the backdrop image scaled to cover the screen.
const backgroundVertSrc = `#version 410 core

uniform vec2 uCover;

out vec2 vUV;

void main() {
    vec2 p = vec2((gl_VertexID << 1) & 2, gl_VertexID & 2);
    vUV = (p - 0.5) * uCover + 0.5;
    gl_Position = vec4(p * 2.0 - 1.0, 1.0, 1.0);
}
` + "\x00"

const backgroundFragSrc = `#version 410 core

uniform sampler2D uTex;
uniform bool uHasTex;
uniform vec3 uColor;

in vec2 vUV;
out vec4 FragColor;

void main() {
    if (uHasTex) {
        FragColor = vec4(texture(uTex, vUV).rgb, 1.0);
    } else {
        FragColor = vec4(uColor, 1.0);
    }
}
` + "\x00"

// Text vertex shader: screen-space textured quads for font rendering.
const textVertSrc = `#version 410 core

layout(location = 0) in vec2 aPos;
layout(location = 1) in vec2 aUV;
layout(location = 2) in vec4 aColor;

uniform vec2 uResolution;

out vec2 vUV;
out vec4 vColor;

void main() {
    vec2 ndc = (aPos / uResolution) * 2.0 - 1.0;
    ndc.y = -ndc.y;
    gl_Position = vec4(ndc, 0.0, 1.0);
    vUV = aUV;
    vColor = aColor;
}
` + "\x00"

// Text fragment shader: font atlas sampling with color tint.
const textFragSrc = `#version 410 core

uniform sampler2D uFontTex;

in vec2 vUV;
in vec4 vColor;
out vec4 FragColor;

void main() {
    vec4 t = texture(uFontTex, vUV);
    if (t.a < 0.01) discard;
    FragColor = vec4(t.rgb * vColor.rgb, t.a * vColor.a);
}
` + "\x00"

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(buf))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile shader: %s", strings.TrimRight(buf, "\x00"))
	}
	return shader, nil
}

func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	vs, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	gl.DetachShader(program, vs)
	gl.DetachShader(program, fs)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(buf))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link program: %s", strings.TrimRight(buf, "\x00"))
	}
	return program, nil
}
