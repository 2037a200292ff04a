//go:build darwin

package clipboard

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa

#import <Cocoa/Cocoa.h>
#include <stdlib.h>
#include <string.h>

typedef struct {
    char *uti;
    void *data;
    int   len;
} pk_rep;

// pk_read_all copies every representation of every pasteboard item into a
// malloc'd array. Caller frees with pk_free.
static int pk_read_all(pk_rep **out) {
    @autoreleasepool {
        NSArray<NSPasteboardItem *> *items = [[NSPasteboard generalPasteboard] pasteboardItems];
        int capacity = 0;
        for (NSPasteboardItem *item in items) {
            capacity += (int)[[item types] count];
        }
        *out = NULL;
        if (capacity == 0) {
            return 0;
        }
        pk_rep *reps = calloc(capacity, sizeof(pk_rep));
        int n = 0;
        for (NSPasteboardItem *item in items) {
            for (NSPasteboardType type in [item types]) {
                NSData *data = [item dataForType:type];
                if (data == nil || n >= capacity) {
                    continue;
                }
                reps[n].uti = strdup([type UTF8String]);
                reps[n].len = (int)[data length];
                reps[n].data = malloc(reps[n].len > 0 ? reps[n].len : 1);
                memcpy(reps[n].data, [data bytes], reps[n].len);
                n++;
            }
        }
        *out = reps;
        return n;
    }
}

static void pk_free(pk_rep *reps, int n) {
    for (int i = 0; i < n; i++) {
        free(reps[i].uti);
        free(reps[i].data);
    }
    free(reps);
}

static void pk_clear(void) {
    @autoreleasepool {
        [[NSPasteboard generalPasteboard] clearContents];
    }
}

static int pk_write_text(const void *bytes, int len, int transient) {
    @autoreleasepool {
        NSPasteboard *pb = [NSPasteboard generalPasteboard];
        NSString *str = [[NSString alloc] initWithBytes:bytes length:len encoding:NSUTF8StringEncoding];
        [pb clearContents];
        BOOL ok;
        if (str != nil) {
            ok = [pb setString:str forType:NSPasteboardTypeString];
        } else {
            // Not valid UTF-8: stage the bytes unmodified under the same type.
            ok = [pb setData:[NSData dataWithBytes:bytes length:len] forType:NSPasteboardTypeString];
        }
        if (ok && transient) {
            // nspasteboard.org markers honoured by clipboard managers.
            [pb setData:[NSData data] forType:@"org.nspasteboard.TransientType"];
            [pb setData:[NSData data] forType:@"org.nspasteboard.ConcealedType"];
        }
        return ok ? 1 : 0;
    }
}

static int pk_write_raw(const char *uti, const void *bytes, int len) {
    @autoreleasepool {
        NSData *data = [NSData dataWithBytes:bytes length:len];
        NSString *type = [NSString stringWithUTF8String:uti];
        return [[NSPasteboard generalPasteboard] setData:data forType:type] ? 1 : 0;
    }
}
*/
import "C"

import (
	"errors"
	"unsafe"
)

var errPasteboardWrite = errors.New("pasteboard: write rejected")

// Pasteboard is the general NSPasteboard, with full type fidelity.
type Pasteboard struct{}

func NewPasteboard() *Pasteboard {
	return &Pasteboard{}
}

func (p *Pasteboard) ReadAll() (Snapshot, error) {
	var reps *C.pk_rep
	n := int(C.pk_read_all(&reps))
	if n == 0 {
		return nil, nil
	}
	defer C.pk_free(reps, C.int(n))

	out := make(Snapshot, 0, n)
	for _, r := range unsafe.Slice(reps, n) {
		out = append(out, Representation{
			Type: C.GoString(r.uti),
			Data: C.GoBytes(r.data, r.len),
		})
	}
	return out, nil
}

func (p *Pasteboard) Clear() error {
	C.pk_clear()
	return nil
}

func (p *Pasteboard) WriteText(text string, transient bool) error {
	b := []byte(text)
	t := C.int(0)
	if transient {
		t = 1
	}
	if C.pk_write_text(bytesPtr(b), C.int(len(b)), t) == 0 {
		return errPasteboardWrite
	}
	return nil
}

func (p *Pasteboard) WriteRaw(typ string, data []byte) error {
	cType := C.CString(typ)
	defer C.free(unsafe.Pointer(cType))
	if C.pk_write_raw(cType, bytesPtr(data), C.int(len(data))) == 0 {
		return errPasteboardWrite
	}
	return nil
}

func bytesPtr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Pointer(&b[0])
}
