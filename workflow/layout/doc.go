// Copyright (c) AgentCanvas Authors.
// Licensed under the MIT License.

/*
Package layout 提供画布节点的自动定位算法。

# 概述

layout 包为 workflow.Graph 计算节点坐标，无需人工摆放即可得到可读的
画布。提供两种策略：

  - Layered — 经典分层布局（Sugiyama 风格）：对全量边集做层级分配与
    层内重心排序，支持纵向 / 横向两个方向。
  - Hybrid  — 默认策略。纵向主干 + 分支横向偏移：主执行路径保持垂直，
    条件的 then / else 前向分支分别向右 / 向左偏移；回环（loop-back）
    分支目标保持主干位置不动。

两种策略均为纯函数：同一图输入必产生相同的坐标映射，容忍孤立节点与
环（回环边），不做 I/O。
*/
package layout
