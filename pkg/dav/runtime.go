package dav

// The fixed C includes, prototypes, and helper bodies emitted around every
// translation: a small runtime surface (string concatenation, int/char to
// string conversion, whole-file read/write) that generated C can call
// without any forward declaration of its own.

const cIncludes = `#include <stdio.h>
#include <stdlib.h>
#include <string.h>

`

const cPrototypes = `char* concat(char* str1, char* str2);
char* itos(int x);
char* ctos(char c);

char* read_file(char* path);
void write_file(char* path, char* content);
`

const cHelpers = `
char* concat(char* str1, char* str2) {
static char buf[1024];
snprintf(buf, sizeof(buf), "%s%s", str1, str2);
return buf;
}

char* itos(int x) {
static char buf[32];
snprintf(buf, sizeof(buf), "%d", x);
return buf;
}

char* ctos(char c) {
static char buf[2];
buf[0] = c;
buf[1] = '\0';
return buf;
}

char* read_file(char* path) {
FILE* f = fopen(path, "rb");
if (!f) return NULL;
fseek(f, 0, SEEK_END);
long len = ftell(f);
fseek(f, 0, SEEK_SET);
char* buf = malloc(len + 1);
fread(buf, 1, len, f);
buf[len] = '\0';
fclose(f);
return buf;
}

void write_file(char* path, char* content) {
FILE* f = fopen(path, "w");
if (!f) return;
fprintf(f, "%s", content);
fclose(f);
}
`
