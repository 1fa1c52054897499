// Command msgplusfetch GETs a URL and pretty-prints the
// application/x-msgpack response body as a Value.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-resty/resty/v2"

	"msgplus"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <url>", os.Args[0])
	}
	url := os.Args[1]

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetHeader("Accept", "application/x-msgpack").
		Get(url)
	if err != nil {
		log.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode() >= 400 {
		log.Fatalf("server returned %d: %s", resp.StatusCode(), resp.Body())
	}

	v, err := msgplus.Unmarshal(resp.Body())
	if err != nil {
		log.Fatalf("decode failed: %v", err)
	}
	printValue(v, 0)
}

func printValue(v msgplus.Value, indent int) {
	pad := ""
	for i := 0; i < indent; i++ {
		pad += "  "
	}
	switch v.Tag() {
	case msgplus.TagArray:
		arr, _ := v.AsArray()
		fmt.Printf("%s[\n", pad)
		for _, elem := range arr {
			printValue(elem, indent+1)
		}
		fmt.Printf("%s]\n", pad)
	case msgplus.TagMap:
		m, _ := v.AsMap()
		fmt.Printf("%s{\n", pad)
		for _, p := range m.Pairs() {
			fmt.Printf("%s  %s:\n", pad, describe(p.Key))
			printValue(p.Value, indent+2)
		}
		fmt.Printf("%s}\n", pad)
	default:
		fmt.Printf("%s%s\n", pad, describe(v))
	}
}

func describe(v msgplus.Value) string {
	switch v.Tag() {
	case msgplus.TagNil:
		return "nil"
	case msgplus.TagBool:
		b, _ := v.AsBool()
		return fmt.Sprintf("%v", b)
	case msgplus.TagInt:
		i, _ := v.AsInt()
		return fmt.Sprintf("%d", i)
	case msgplus.TagUint:
		u, _ := v.AsUint()
		return fmt.Sprintf("%d", u)
	case msgplus.TagFloat32:
		f, _ := v.AsFloat32()
		return fmt.Sprintf("%g", f)
	case msgplus.TagFloat64:
		f, _ := v.AsFloat64()
		return fmt.Sprintf("%g", f)
	case msgplus.TagStr:
		s, _ := v.AsStr()
		return fmt.Sprintf("%q", s)
	case msgplus.TagBin:
		b, _ := v.AsBin()
		return fmt.Sprintf("<%d bytes>", len(b))
	case msgplus.TagExt:
		ext, _ := v.AsExt()
		return fmt.Sprintf("ext(type=%d, %d bytes)", ext.Type, len(ext.Data))
	default:
		return v.Tag().String()
	}
}
