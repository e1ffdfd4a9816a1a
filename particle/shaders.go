// Copyright (c) 2026, Terraglobe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particle

// The two fixed GLSL programs of the pipeline. The simulation program
// advects one particle per texel of the state texture; the draw
// program renders either the faded previous trails (drawMode 0) or the
// particle points (drawMode 1), switched by uniform so both sub-passes
// share one program.
//
// Grid lookups use manual bilinear filtering: hardware linear
// filtering on the state texture would interpolate the fixed-point
// encoded bytes and corrupt the positions, so every texture here is
// sampled nearest and mixed in the shader.

// SimVertex renders the full-screen quad driving one fragment per
// particle texel.
const SimVertex = `#version 410 core
out vec2 texCoord;

void main() {
    vec2 corner = vec2(gl_VertexID & 1, gl_VertexID >> 1);
    texCoord = corner;
    gl_Position = vec4(corner * 2.0 - 1.0, 0.0, 1.0);
}
`

// SimFragment advects, wraps, stochastically respawns, and re-encodes
// one particle position.
const SimFragment = `#version 410 core
uniform sampler2D particleSampler;
uniform sampler2D gridSampler;
uniform vec2 gridDimensions;
uniform vec4 gridMinMax;
uniform float randSeed;
uniform float speedFactor;
uniform float dropRate;
uniform float dropRateMultiplier;
uniform vec4 bbox;

in vec2 texCoord;
out vec4 fragColor;

float rand(const vec2 co) {
    float t = dot(vec2(12.9898, 78.233), co);
    return fract(sin(t) * 43758.5453);
}

vec2 lookupVector(const vec2 uv) {
    vec2 px = 1.0 / gridDimensions;
    vec2 vc = floor(uv * gridDimensions) * px;
    vec2 f = fract(uv * gridDimensions);
    vec2 tl = texture(gridSampler, vc).rg;
    vec2 tr = texture(gridSampler, vc + vec2(px.x, 0.0)).rg;
    vec2 bl = texture(gridSampler, vc + vec2(0.0, px.y)).rg;
    vec2 br = texture(gridSampler, vc + px).rg;
    return mix(mix(tl, tr, f.x), mix(bl, br, f.x), f.y);
}

void main() {
    vec4 color = texture(particleSampler, texCoord);
    vec2 pos = vec2(color.r / 255.0 + color.b, color.g / 255.0 + color.a);

    vec2 velocity = mix(gridMinMax.xy, gridMinMax.zw, lookupVector(pos));
    float speedT = length(velocity) / length(gridMinMax.zw);

    // equirectangular pole correction: apparent speed stays uniform
    // as the longitude circles shrink toward the poles
    float distortion = max(cos(radians(pos.y * 180.0 - 90.0)), 0.05);
    vec2 offset = vec2(velocity.x / distortion, -velocity.y) * 0.0001 * speedFactor;

    pos = fract(1.0 + pos + offset);

    vec2 seed = (pos + texCoord) * randSeed;
    float dropChance = dropRate + speedT * dropRateMultiplier;
    float drop = step(1.0 - dropChance, rand(seed));
    vec2 randomPos = mix(bbox.xy, bbox.zw, vec2(rand(seed + 1.3), rand(seed + 2.1)));
    pos = mix(pos, randomPos, drop);

    fragColor = vec4(fract(pos * 255.0), floor(pos * 255.0) / 255.0);
}
`

// DrawVertex emits either the full-screen quad (drawMode 0) or one
// point per particle decoded from the simulation state (drawMode 1).
const DrawVertex = `#version 410 core
uniform int drawMode;
uniform sampler2D simParticleSampler;
uniform float simTextureDimension;
uniform vec4 bbox;

out vec2 texCoord;
out vec2 particlePos;

void main() {
    if (drawMode == 0) {
        vec2 corner = vec2(gl_VertexID & 1, gl_VertexID >> 1);
        texCoord = corner;
        particlePos = vec2(0.0);
        gl_Position = vec4(corner * 2.0 - 1.0, 0.0, 1.0);
        return;
    }

    float i = float(gl_VertexID);
    vec2 uv = vec2(
        mod(i, simTextureDimension) + 0.5,
        floor(i / simTextureDimension) + 0.5) / simTextureDimension;
    vec4 color = texture(simParticleSampler, uv);
    vec2 pos = vec2(color.r / 255.0 + color.b, color.g / 255.0 + color.a);

    particlePos = pos;
    texCoord = vec2(0.0);
    vec2 boxed = mix(bbox.xy, bbox.zw, pos);
    gl_Position = vec4(boxed.x * 2.0 - 1.0, 1.0 - boxed.y * 2.0, 0.0, 1.0);
    gl_PointSize = 1.0;
}
`

// DrawFragment fades the previous trails (drawMode 0, quantized to
// 8-bit so the decay terminates) or colors a particle from the ramp
// indexed by its relative field speed (drawMode 1).
const DrawFragment = `#version 410 core
uniform int drawMode;
uniform sampler2D tileOrColorsSampler;
uniform sampler2D gridSampler;
uniform vec4 gridMinMax;
uniform float fadeOpacity;

in vec2 texCoord;
in vec2 particlePos;
out vec4 fragColor;

void main() {
    if (drawMode == 0) {
        vec4 prev = texture(tileOrColorsSampler, texCoord);
        fragColor = floor(prev * 255.0 * fadeOpacity) / 255.0;
        return;
    }

    vec2 velocity = mix(gridMinMax.xy, gridMinMax.zw,
        texture(gridSampler, particlePos).rg);
    float speedT = length(velocity) / length(gridMinMax.zw);
    vec2 rampPos = vec2(fract(16.0 * speedT), floor(16.0 * speedT) / 16.0);
    fragColor = texture(tileOrColorsSampler, rampPos);
}
`
